package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shoppos/internal/database"
	"shoppos/internal/models"
	"shoppos/internal/report"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// RunAgent answers a shopkeeper's question, calling back into the inventory
// and the report engine when the model asks for data. Everything is scoped
// to the caller's shop.
func RunAgent(userMessage, apiKey, shopID string) (string, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")

	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are a POS assistant for a single shop.

	RULES:
	1. READ: If a user asks for PRICE, COST, STOCK, or DETAILS of a product:
	   - You MUST call 'check_inventory' to get the full list.
	   - Then read the JSON to find the specific item and answer the user.
	2. SALES: If the user asks about revenue, profit, best sellers, or trends,
	   call 'get_sales_report'. You may narrow it by category or salesperson.
	3. Answer with concrete numbers from the tools, never from memory.

	USER: %s`, today, userMessage)

	// --- DEFINE TOOLS ---
	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_inventory",
					Description: "Get the full inventory list. Use this to find ANY product details like ID, Name, Price, Cost, or Stock.",
				},
				{
					Name:        "get_sales_report",
					Description: "Compute revenue, profit, transaction count and top products for a date range, optionally narrowed by category or salesperson.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date":  {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":    {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
							"category":    {Type: genai.TypeString, Description: "Optional exact category filter"},
							"salesperson": {Type: genai.TypeString, Description: "Optional exact salesperson name filter"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	// --- HANDLE TOOL CALLS ---
	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			switch funcCall.Name {
			case "check_inventory":
				return executeCheckInventory(ctx, session, shopID)
			case "get_sales_report":
				return executeSalesReport(ctx, session, funcCall, shopID)
			}
		}
	}

	return printResponse(resp), nil
}

// --- TOOL EXECUTORS ---

func executeCheckInventory(ctx context.Context, session *genai.ChatSession, shopID string) (string, error) {
	var products []models.Product
	if err := database.DB.Where("shop_id = ?", shopID).Find(&products).Error; err != nil {
		return "", err
	}

	type SimpleProduct struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
		Stock    int    `json:"stock"`
		Price    string `json:"price"`
		Cost     string `json:"cost"`
	}
	var simpleList []SimpleProduct
	for _, p := range products {
		simpleList = append(simpleList, SimpleProduct{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Stock:    p.StockQuantity,
			Price:    p.Price.StringFixed(2),
			Cost:     p.CostPrice.StringFixed(2),
		})
	}

	jsonBytes, _ := json.Marshal(simpleList)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "check_inventory",
		Response: map[string]interface{}{"inventory": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func executeSalesReport(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall, shopID string) (string, error) {
	args := funcCall.Args
	startStr, _ := args["start_date"].(string)
	endStr, _ := args["end_date"].(string)
	category, _ := args["category"].(string)
	salesperson, _ := args["salesperson"].(string)

	filter, err := report.ParseFilter(startStr, endStr, category, salesperson)
	if err != nil {
		return "Error: Dates must be in YYYY-MM-DD format.", nil
	}

	transactions, err := database.ListSales(shopID)
	if err != nil {
		return "Error fetching sales.", nil
	}
	inventory, err := database.ListInventoryItems(shopID)
	if err != nil {
		return "Error fetching inventory.", nil
	}

	summary := report.Compute(transactions, inventory, filter)

	topJSON, _ := json.Marshal(summary.TopProducts)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_sales_report",
		Response: map[string]interface{}{
			"revenue":      summary.TotalRevenue.StringFixed(2),
			"profit":       summary.TotalProfit.StringFixed(2),
			"sales_count":  summary.TransactionCount,
			"top_products": string(topJSON),
		},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
