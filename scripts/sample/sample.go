package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

const baseURL = "http://localhost:8080/api"

type Holding struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Ticker   string  `json:"ticker,omitempty"`
	Type     string  `json:"type"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Currency string  `json:"currency"`
	Color    string  `json:"color,omitempty"`
	BillDay  *int    `json:"bill_day,omitempty"`
}

type Category struct {
	Label    string   `json:"label"`
	Icon     string   `json:"icon"`
	Color    string   `json:"color"`
	Keywords []string `json:"keywords"`
}

type Automation struct {
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	Amount          float64 `json:"amount"`
	DayOfMonth      int     `json:"day_of_month"`
	Category        string  `json:"category,omitempty"`
	TransactionKind string  `json:"transaction_kind,omitempty"`
	TargetAssetID   string  `json:"target_asset_id,omitempty"`
	SourceAssetID   string  `json:"source_asset_id,omitempty"`
	InvestAssetID   string  `json:"invest_asset_id,omitempty"`
	Active          bool    `json:"active"`
}

func main() {
	bank := createHolding(Holding{
		Name: "主要帳戶", Type: "CASH", Price: 1, Quantity: 300000, Currency: "TWD", Color: "#0ea5e9",
	})
	salaryAcct := createHolding(Holding{
		Name: "薪轉帳戶", Type: "CASH", Price: 1, Quantity: 80000, Currency: "TWD", Color: "#22c55e",
	})
	tsmc := createHolding(Holding{
		Name: "台積電", Ticker: "2330", Type: "STOCK", Price: 1000, Quantity: 50, Currency: "TWD",
	})
	voo := createHolding(Holding{
		Name: "Vanguard S&P 500", Ticker: "VOO", Type: "STOCK", Price: 550, Quantity: 12, Currency: "USD",
	})
	createHolding(Holding{
		Name: "Bitcoin", Ticker: "BTC", Type: "CRYPTO", Price: 95000, Quantity: 0.2, Currency: "USD",
	})
	billDay := 15
	createHolding(Holding{
		Name: "信用卡", Type: "CREDIT_CARD", Price: 1, Quantity: -23000, Currency: "TWD", BillDay: &billDay,
	})

	fmt.Printf("Created holdings: bank=%s tsmc=%s voo=%s\n", bank.ID, tsmc.ID, voo.ID)

	for _, c := range []Category{
		{Label: "餐飲", Icon: "Utensils", Color: "#f97316", Keywords: []string{"午餐", "晚餐", "咖啡"}},
		{Label: "交通", Icon: "Car", Color: "#3b82f6", Keywords: []string{"捷運", "加油", "停車"}},
		{Label: "娛樂", Icon: "Film", Color: "#a855f7", Keywords: []string{"電影", "遊戲"}},
		{Label: "投資", Icon: "Briefcase", Color: "#14b8a6"},
		{Label: "居住", Icon: "Home", Color: "#eab308", Keywords: []string{"房租", "水電"}},
	} {
		createCategory(c)
	}
	fmt.Println("Created categories")

	createAutomation(Automation{
		Name: "房租", Type: "RECURRING", Amount: 18000, DayOfMonth: 1,
		Category: "居住", TransactionKind: "EXPENSE", TargetAssetID: bank.ID, Active: true,
	})
	createAutomation(Automation{
		Name: "薪資", Type: "RECURRING", Amount: 60000, DayOfMonth: 5,
		TransactionKind: "INCOME", TargetAssetID: salaryAcct.ID, Active: true,
	})
	createAutomation(Automation{
		Name: "台積電定期定額", Type: "DCA_INVEST", Amount: 20000, DayOfMonth: 6,
		SourceAssetID: bank.ID, InvestAssetID: tsmc.ID, Active: true,
	})
	fmt.Println("Created automation rules")

	runAutomations()
	fmt.Println("Sample data created successfully!")
}

func createHolding(h Holding) Holding {
	var created Holding
	post("/holdings", h, &created)
	return created
}

func createCategory(c Category) {
	post("/categories", c, nil)
}

func createAutomation(a Automation) {
	post("/automations", a, nil)
}

func runAutomations() {
	resp, err := http.Post(baseURL+"/automations/run", "application/json", nil)
	if err != nil {
		log.Fatalf("Failed to run automations: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Failed to run automations: status %d", resp.StatusCode)
	}
	fmt.Println("Ran automation pass")
}

func post(path string, payload any, out any) {
	body, _ := json.Marshal(payload)

	resp, err := http.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("Failed to POST %s: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("Failed to POST %s: status %d", path, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Fatalf("Failed to decode %s response: %v", path, err)
		}
	}
}
