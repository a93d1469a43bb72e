package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/01moynul/sales-management-golang/internal/database"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	// maxRows caps how much of a result is sent back to the model.
	maxRows = 200

	defaultQueryTimeout = 10 * time.Second
)

// allowedViews are the only relations the model may read.
var allowedViews = map[string]bool{
	"SALESREPORTBYEMPLOYEE": true,
	"SALESREPORTBYPRODUCT":  true,
	"SALESREPORTBYCUSTOMER": true,
	"SALESREPORTTODAY":      true,
	"TOTALSALESREPORT":      true,
}

var ErrNotReadOnly = errors.New("security violation: only single SELECT statements over the reporting views are allowed")

// Querier runs literal read-only SQL. *database.Conn satisfies it;
// main hands in the DB_DSN_READONLY session when one is configured.
type Querier interface {
	Query(ctx context.Context, query string, args ...any) (*database.Result, error)
}

// Assistant answers sales questions with Gemini, letting the model run
// read-only SQL against the reporting views.
type Assistant struct {
	Client    *genai.Client
	DB        Querier
	ModelName string
	// QueryTimeout bounds each tool query. Zero means 10s.
	QueryTimeout time.Duration
}

// NewAssistant initializes the Gemini client.
func NewAssistant(ctx context.Context, apiKey, modelName string, db Querier) (*Assistant, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &Assistant{Client: client, DB: db, ModelName: modelName}, nil
}

// Close releases the Gemini client.
func (s *Assistant) Close() error {
	return s.Client.Close()
}

// Ask sends one question and follows the model's SQL tool calls until it
// answers in text. It returns the answer and the tokens used.
func (s *Assistant) Ask(ctx context.Context, question string) (string, int, error) {
	model := s.Client.GenerativeModel(s.ModelName)

	sqlTool := &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        "run_readonly_sql",
				Description: "Executes a READ-ONLY SQL query (SELECT only) against the sales database.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"query": {
							Type:        genai.TypeString,
							Description: "The MySQL SELECT query to execute.",
						},
					},
					Required: []string{"query"},
				},
			},
		},
	}
	model.Tools = []*genai.Tool{sqlTool}

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(fmt.Sprintf(`
			You are the sales management assistant.
			Access: MySQL database (run_readonly_sql).
			Schema: %s
			Rules: SELECT only. Be concise. Quote amounts as they appear in the data.
		`, schemaDefinition()))},
	}

	cs := model.StartChat()
	res, err := cs.SendMessage(ctx, genai.Text(question))
	if err != nil {
		return "", 0, fmt.Errorf("error sending message: %w", err)
	}

	totalTokens := 0
	if res.UsageMetadata != nil {
		totalTokens = int(res.UsageMetadata.TotalTokenCount)
	}

	for {
		if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
			return "No response.", totalTokens, nil
		}
		part := res.Candidates[0].Content.Parts[0]

		funcCall, ok := part.(genai.FunctionCall)
		if !ok {
			return fmt.Sprintf("%v", part), totalTokens, nil
		}
		if funcCall.Name != "run_readonly_sql" {
			return "", totalTokens, fmt.Errorf("unknown function: %s", funcCall.Name)
		}

		query, ok := funcCall.Args["query"].(string)
		if !ok {
			return "", totalTokens, fmt.Errorf("invalid query argument")
		}
		log.Printf("Assistant running SQL: %s", query)

		sqlResult, sqlErr := s.runReadOnlyQuery(ctx, query)
		if sqlErr != nil {
			sqlResult = fmt.Sprintf("SQL Error: %v", sqlErr)
		}

		res, err = cs.SendMessage(ctx, genai.FunctionResponse{
			Name:     "run_readonly_sql",
			Response: map[string]interface{}{"result": sqlResult},
		})
		if err != nil {
			return "", totalTokens, fmt.Errorf("tool response error: %w", err)
		}
		// UsageMetadata is cumulative for the chat, so take the latest.
		if res.UsageMetadata != nil {
			totalTokens = int(res.UsageMetadata.TotalTokenCount)
		}
	}
}

var (
	forbidden = regexp.MustCompile(`\b(INSERT|UPDATE|DELETE|DROP|ALTER|CREATE|REPLACE|TRUNCATE|GRANT|REVOKE|CALL|SET|LOCK|HANDLER|LOAD|INTO|SLEEP|BENCHMARK|GET_LOCK|RELEASE_LOCK|RELEASE_ALL_LOCKS|IS_FREE_LOCK|IS_USED_LOCK|LOAD_FILE)\b`)
	relation  = regexp.MustCompile(`\b(?:FROM|JOIN)\s+([^\s(),;]+)`)
	commaJoin = regexp.MustCompile(`\bFROM\s+[^\s(),;]+(?:\s+(?:AS\s+)?\w+)?\s*,`)
)

// runReadOnlyQuery runs one SELECT and returns the rows as a JSON array.
func (s *Assistant) runReadOnlyQuery(ctx context.Context, query string) (string, error) {
	if err := checkReadOnly(query); err != nil {
		return "", err
	}

	timeout := s.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := s.DB.Query(ctx, query)
	if err != nil {
		return "", err
	}

	set := res.Last()
	tableData := []map[string]interface{}{}
	for i, row := range set.Rows {
		if i == maxRows {
			break
		}
		entry := make(map[string]interface{}, len(set.Columns))
		for j, col := range set.Columns {
			entry[col] = database.FormatValue(row[j])
		}
		tableData = append(tableData, entry)
	}

	jsonData, err := json.Marshal(tableData)
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

// checkReadOnly accepts a single SELECT whose every FROM/JOIN target is
// one of the reporting views.
func checkReadOnly(query string) error {
	normalized := strings.ToUpper(strings.TrimSpace(query))
	normalized = strings.TrimSuffix(normalized, ";")
	if !strings.HasPrefix(normalized, "SELECT") || strings.Contains(normalized, ";") || forbidden.MatchString(normalized) {
		return ErrNotReadOnly
	}

	targets := relation.FindAllStringSubmatch(normalized, -1)
	if len(targets) == 0 || commaJoin.MatchString(normalized) {
		return ErrNotReadOnly
	}
	for _, t := range targets {
		if !allowedViews[strings.Trim(t[1], "`")] {
			return ErrNotReadOnly
		}
	}
	return nil
}

func schemaDefinition() string {
	return `
	- SalesReportByEmployee (view: EmployeeID, EmployeeName, TotalSales)
	- SalesReportByProduct (view: ProductID, ProductName, TotalSales)
	- SalesReportByCustomer (view: CustomerID, CustomerName, TotalSales)
	- SalesReportToday (view: today's sales lines)
	- TotalSalesReport (view: OrderDate, TotalSales)
	`
}
