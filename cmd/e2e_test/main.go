package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"os"
	"time"
)

var baseURL = "http://localhost:8080"

type view struct {
	GrandTotal float64  `json:"grand_total"`
	Names      []string `json:"names"`
}

func main() {
	if v := os.Getenv("BUTCE_BASE_URL"); v != "" {
		baseURL = v
	}
	// Wait for server to start
	time.Sleep(2 * time.Second)

	// 1. Health Check
	checkEndpoint("GET", "/health", nil, 200)

	// 2. Baseline
	before := getView()

	// 3. Add a holding in Turkish notation
	name := fmt.Sprintf("e2e-%d", time.Now().UnixNano())
	after := addHolding(name, "2,5", "1.000,40 TL")
	want := before.GrandTotal + 2.5*1000.40
	if math.Abs(after.GrandTotal-want) > 0.01 {
		log.Fatalf("Expected net worth %.2f, got %.2f", want, after.GrandTotal)
	}

	// 4. Page renders
	checkEndpoint("GET", "/", nil, 200)

	// 5. Delete it, then delete again (no-op)
	deleteHolding(name, true)
	deleteHolding(name, false)

	// 6. Back to baseline
	final := getView()
	if math.Abs(final.GrandTotal-before.GrandTotal) > 0.01 {
		log.Fatalf("Expected net worth %.2f after delete, got %.2f", before.GrandTotal, final.GrandTotal)
	}

	fmt.Println("ALL TESTS PASSED")
}

func checkEndpoint(method, path string, body interface{}, expectedStatus int) []byte {
	fmt.Printf("Testing %s %s...\n", method, path)
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, _ := http.NewRequest(method, baseURL+path, bodyReader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expectedStatus {
		log.Fatalf("Expected status %d, got %d. Body: %s", expectedStatus, resp.StatusCode, string(respBody))
	}
	return respBody
}

func getView() view {
	var v view
	if err := json.Unmarshal(checkEndpoint("GET", "/api/holdings", nil, 200), &v); err != nil {
		log.Fatalf("Decode view failed: %v", err)
	}
	return v
}

func addHolding(name, qty, price string) view {
	fmt.Printf("Adding holding %s...\n", name)
	body := map[string]string{"type": "metal_fx", "name": name, "quantity": qty, "price": price}
	var v view
	if err := json.Unmarshal(checkEndpoint("POST", "/api/holdings", body, 201), &v); err != nil {
		log.Fatalf("Decode view failed: %v", err)
	}
	return v
}

func deleteHolding(name string, wantDeleted bool) {
	fmt.Printf("Deleting holding %s...\n", name)
	var res struct {
		Deleted bool `json:"deleted"`
	}
	if err := json.Unmarshal(checkEndpoint("DELETE", "/api/holdings/"+url.PathEscape(name), nil, 200), &res); err != nil {
		log.Fatalf("Decode delete response failed: %v", err)
	}
	if res.Deleted != wantDeleted {
		log.Fatalf("Expected deleted=%v, got %v", wantDeleted, res.Deleted)
	}
}
