package model_test

import (
	"encoding/json"
	"testing"

	"github.com/wealthmap/wealthmap-backend/internal/model"
)

func f64(v float64) *float64 { return &v }

// TestChild_MarshalsAsTuple tests the [node, color] wire layout.
//
// WHY: The visualization frontend consumes children as two-element tuples,
// not as keyed objects; changing the layout silently breaks every chart.
func TestChild_MarshalsAsTuple(t *testing.T) {
	leaf := model.NewAssetNode("Bitcoin (BTC)", 35000,
		&model.CryptoCurrency{Ticker: "btc", Qty: f64(0.1)}, []string{"Total"})
	child := model.Child{Node: leaf, Color: "#1a2b3c"}

	data, err := json.Marshal(child)
	if err != nil {
		t.Fatalf("Marshal() returned error: %v", err)
	}

	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		t.Fatalf("child did not marshal as an array: %v", err)
	}
	if len(tuple) != 2 {
		t.Fatalf("tuple has %d elements, want 2", len(tuple))
	}
	var color string
	if err := json.Unmarshal(tuple[1], &color); err != nil || color != "#1a2b3c" {
		t.Errorf("second element = %s, want the color", tuple[1])
	}
}

// TestAssetNode_MarshalKeepsDeclaredAsset tests the leaf wire shape.
//
// WHY: A marshaled leaf carries its declared asset with the type
// discriminant restored, so a serialized tree round-trips into a document
// the engine can validate again.
func TestAssetNode_MarshalKeepsDeclaredAsset(t *testing.T) {
	leaf := model.NewAssetNode("Brazilian Real (BRL)", 1500,
		&model.CashReserve{Currency: "BRL", Qty: f64(1500)}, []string{"Total", "Cash"})

	data, err := json.Marshal(leaf)
	if err != nil {
		t.Fatalf("Marshal() returned error: %v", err)
	}

	var decoded struct {
		Name  string   `json:"name"`
		Value float64  `json:"value"`
		Path  []string `json:"path"`
		Asset struct {
			Type     string  `json:"type"`
			Currency string  `json:"currency"`
			Qty      float64 `json:"qty"`
		} `json:"asset"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() returned error: %v", err)
	}
	if decoded.Name != "Brazilian Real (BRL)" || decoded.Value != 1500 {
		t.Errorf("decoded node = %+v", decoded)
	}
	if decoded.Asset.Type != "cash-reserve" {
		t.Errorf("asset type = %q, want %q", decoded.Asset.Type, "cash-reserve")
	}
	if decoded.Asset.Currency != "BRL" || decoded.Asset.Qty != 1500 {
		t.Errorf("asset = %+v", decoded.Asset)
	}
}

// TestNode_PathKey tests the stable side-table key.
func TestNode_PathKey(t *testing.T) {
	root := model.NewGroupNode("Total", 0, &model.AssetGroup{Name: "Total"}, nil, nil)
	if root.PathKey() != "Total" {
		t.Errorf("root key = %q, want %q", root.PathKey(), "Total")
	}

	nested := model.NewGroupNode("Cash", 0, &model.AssetGroup{Name: "Cash"}, []string{"Total"}, nil)
	if nested.PathKey() != "Total.Cash" {
		t.Errorf("nested key = %q, want %q", nested.PathKey(), "Total.Cash")
	}

	leaf := model.NewAssetNode("US Dollar (USD)", 0, &model.CashReserve{Currency: "USD"},
		[]string{"Total", "Cash"})
	if leaf.PathKey() != "Total.Cash.US Dollar (USD)" {
		t.Errorf("leaf key = %q", leaf.PathKey())
	}
}

// TestAssetVariants_MarshalWithDiscriminant tests the type tag restore.
//
// WHY: Variants decode from documents without storing the tag; marshaling
// must splice it back in or the output is no longer a valid document.
func TestAssetVariants_MarshalWithDiscriminant(t *testing.T) {
	cases := []struct {
		name  string
		asset model.Asset
		typ   string
	}{
		{"cash", &model.CashReserve{Currency: "EUR", Qty: f64(10)}, "cash-reserve"},
		{"crypto", &model.CryptoCurrency{Ticker: "eth", Qty: f64(2)}, "crypto-currency"},
		{"treasury", &model.TreasuryBR{Name: "Tesouro Selic 2029", Qty: f64(1)}, "treasury-br"},
		{"shares us", &model.SharesUS{Ticker: "AAPL", Qty: f64(3)}, "shares-us"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.asset)
			if err != nil {
				t.Fatalf("Marshal() returned error: %v", err)
			}
			var decoded map[string]json.RawMessage
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal() returned error: %v", err)
			}
			var typ string
			if err := json.Unmarshal(decoded["type"], &typ); err != nil || typ != tc.typ {
				t.Errorf("type = %s, want %q", decoded["type"], tc.typ)
			}

			roundTripped, err := model.DecodeAsset(data)
			if err != nil {
				t.Fatalf("DecodeAsset() on marshaled output returned error: %v", err)
			}
			if roundTripped.AssetType() != tc.asset.AssetType() {
				t.Errorf("round-tripped type = %q, want %q", roundTripped.AssetType(), tc.asset.AssetType())
			}
		})
	}
}
