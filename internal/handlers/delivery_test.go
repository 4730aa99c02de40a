package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront/internal/delivery"
)

func quoteTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := delivery.Config{
		Origin:           delivery.Point{Lat: 41.9842, Lng: 44.1158},
		RatePerKm:        0.5,
		MinFee:           2,
		MaxFee:           40,
		ExpressSurcharge: 5,
		CityTariffs:      map[string]float64{"გორი": 2},
	}
	r := gin.New()
	r.GET("/delivery/quote", QuoteDelivery(cfg))
	return r
}

func getQuote(t *testing.T, router *gin.Engine, query string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/delivery/quote?"+query, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	return rec.Code, body
}

func TestQuoteDeliveryCityTariff(t *testing.T) {
	router := quoteTestRouter()

	code, body := getQuote(t, router, "deliveryType=standard&city=გორი")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["resolved"] != true {
		t.Fatalf("expected resolved quote, got %v", body)
	}
	if body["fee"] != 2.0 {
		t.Fatalf("expected fee 2, got %v", body["fee"])
	}
}

func TestQuoteDeliveryPickup(t *testing.T) {
	router := quoteTestRouter()

	code, body := getQuote(t, router, "deliveryType=pickup")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["resolved"] != true || body["fee"] != 0.0 {
		t.Fatalf("expected free resolved pickup, got %v", body)
	}
}

func TestQuoteDeliveryUnresolvedIsNotAnError(t *testing.T) {
	router := quoteTestRouter()

	code, body := getQuote(t, router, "deliveryType=standard&city=ზუგდიდი")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["resolved"] != false {
		t.Fatalf("expected unresolved quote, got %v", body)
	}
}

func TestQuoteDeliveryMalformedCoordinates(t *testing.T) {
	router := quoteTestRouter()

	code, _ := getQuote(t, router, "deliveryType=standard&lat=abc&lng=44.1")
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unparsable coordinates, got %d", code)
	}

	code, _ = getQuote(t, router, "deliveryType=standard&lat=95&lng=44.1")
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range latitude, got %d", code)
	}
}
