package handlers

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/01moynul/sales-management-golang/internal/auth"
	"github.com/01moynul/sales-management-golang/internal/middleware"
	"github.com/01moynul/sales-management-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
)

//
// --- Browser UI Handlers ---
//

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates parses the embedded UI pages. Install with router.SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))
}

// pageData is everything the layout template reads.
type pageData struct {
	Title       string
	Sections    []section
	Section     section
	Tab         tab
	Values      map[string]string
	Outcome     *outcome
	CSVURL      string
	AuthEnabled bool
	Error       string
}

func (h *Handlers) page(title string) pageData {
	return pageData{Title: title, Sections: sections, AuthEnabled: h.Auth != nil}
}

// Index is the handler for GET /
func (h *Handlers) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.tmpl", h.page("Sales Management"))
}

// SectionPage is the handler for GET /ui/:section. It opens the first tab.
func (h *Handlers) SectionPage(c *gin.Context) {
	s, ok := findSection(c.Param("section"))
	if !ok {
		h.notFound(c)
		return
	}
	c.Redirect(http.StatusSeeOther, "/ui/"+s.Key+"/"+s.Tabs[0].Key)
}

// TabPage is the handler for GET /ui/:section/:tab.
// Table tabs run their query when they have no fields or when the
// filter form was submitted (?run=1). ?format=csv downloads the table.
func (h *Handlers) TabPage(c *gin.Context) {
	s, t, ok := h.lookup(c)
	if !ok {
		return
	}

	data := h.page(t.Title)
	data.Section, data.Tab = s, t
	data.Values = formValues(t, c.Query)

	if t.IsForm() || (len(t.Fields) > 0 && c.Query("run") == "") {
		c.HTML(http.StatusOK, "tab.tmpl", data)
		return
	}

	out, status := h.runTab(c, t, c.Query)
	if c.Query("format") == "csv" && out.Err == nil && out.Table != nil {
		writeCSV(c, s.Title+" "+t.Title, *out.Table)
		return
	}

	query := c.Request.URL.Query()
	query.Set("format", "csv")
	data.CSVURL = c.Request.URL.Path + "?" + query.Encode()
	data.Outcome = &out
	c.HTML(status, "tab.tmpl", data)
}

// TabSubmit is the handler for POST /ui/:section/:tab.
func (h *Handlers) TabSubmit(c *gin.Context) {
	s, t, ok := h.lookup(c)
	if !ok {
		return
	}
	if !t.IsForm() {
		c.Redirect(http.StatusSeeOther, c.Request.URL.Path)
		return
	}

	out, status := h.runTab(c, t, c.PostForm)
	if out.Err != nil {
		log.Printf("UI %s/%s failed: %v", s.Key, t.Key, out.Err)
	}

	data := h.page(t.Title)
	data.Section, data.Tab = s, t
	data.Values = formValues(t, c.PostForm)
	data.Outcome = &out
	c.HTML(status, "tab.tmpl", data)
}

// runTab makes the tab's one manager call and picks the response status.
func (h *Handlers) runTab(c *gin.Context, t tab, get func(string) string) (outcome, int) {
	in := &input{fields: t.Fields, get: get}
	out := t.run(c.Request.Context(), h.Managers, in)
	switch {
	case out.Err == nil:
		return out, http.StatusOK
	case in.err != nil && errors.Is(out.Err, in.err):
		return out, http.StatusBadRequest
	default:
		return out, statusFor(out.Err)
	}
}

func (h *Handlers) lookup(c *gin.Context) (section, tab, bool) {
	s, ok := findSection(c.Param("section"))
	if !ok {
		h.notFound(c)
		return section{}, tab{}, false
	}
	t, ok := s.tabByKey(c.Param("tab"))
	if !ok {
		h.notFound(c)
		return section{}, tab{}, false
	}
	return s, t, true
}

func (h *Handlers) notFound(c *gin.Context) {
	data := h.page("Not Found")
	data.Error = "No such page."
	c.HTML(http.StatusNotFound, "index.tmpl", data)
}

// formValues is what each widget shows: the submitted value, else its default.
// Date widgets default to today.
func formValues(t tab, get func(string) string) map[string]string {
	values := make(map[string]string, len(t.Fields))
	for _, f := range t.Fields {
		v := get(f.Name)
		if v == "" {
			v = f.Value
		}
		if v == "" && f.Kind == "date" {
			v = time.Now().Format(time.DateOnly)
		}
		values[f.Name] = v
	}
	return values
}

// writeCSV sends t as an attachment named after the page.
func writeCSV(c *gin.Context, name string, t models.Table) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, slug.Make(name)))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.Write(t.Columns); err != nil {
		log.Printf("CSV export %s: %v", name, err)
		return
	}
	if err := w.WriteAll(t.Rows); err != nil {
		log.Printf("CSV export %s: %v", name, err)
	}
}

//
// --- Browser Login ---
//

// LoginPage is the handler for GET /login
func (h *Handlers) LoginPage(c *gin.Context) {
	if h.Auth == nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.HTML(http.StatusOK, "login.tmpl", h.page("Sign in"))
}

// LoginSubmit is the handler for POST /login. It stores the token in
// the session cookie the auth middleware reads.
func (h *Handlers) LoginSubmit(c *gin.Context) {
	if h.Auth == nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	token, err := h.Auth.Login(c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		data := h.page("Sign in")
		status := http.StatusInternalServerError
		data.Error = "Failed to sign in"
		if errors.Is(err, auth.ErrInvalidCredentials) {
			status = http.StatusUnauthorized
			data.Error = err.Error()
		}
		c.HTML(status, "login.tmpl", data)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(auth.TokenTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout is the handler for POST /logout
func (h *Handlers) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
