package marketdata

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/wealthmap/wealthmap-backend/internal/apperrors"
)

// DefaultTreasuryBaseURL is the Tesouro Direto site serving the bond catalog.
const DefaultTreasuryBaseURL = "https://www.tesourodireto.com.br"

const treasuryCatalogPath = "/json/br/com/b3/tesourodireto/service/api/treasurybondsinfo.json"

// TreasuryClient fetches the current government bond price catalog from
// Tesouro Direto.
type TreasuryClient struct {
	httpClient *http.Client

	// BaseURL can be overridden in tests to point at a local server.
	BaseURL string
}

// NewTreasuryClient creates a new Tesouro Direto client.
//
// Certificate verification is disabled for this client only: the
// tesourodireto.com.br certificate chain is not served correctly to
// non-browser clients, so a verifying client cannot fetch the catalog at all.
func NewTreasuryClient() *TreasuryClient {
	return &TreasuryClient{
		httpClient: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // broken chain on tesourodireto.com.br
			},
		},
		BaseURL: DefaultTreasuryBaseURL,
	}
}

// treasuryResponse is the raw catalog payload shape.
type treasuryResponse struct {
	Response struct {
		TrsrBdTradgList []struct {
			TrsrBd struct {
				Nm             string  `json:"nm"`
				UntrInvstmtVal float64 `json:"untrInvstmtVal"`
				UntrRedVal     float64 `json:"untrRedVal"`
			} `json:"TrsrBd"`
		} `json:"TrsrBdTradgList"`
	} `json:"response"`
}

// Catalog fetches the current bond price list. The unit value of a bond is
// its investment price, falling back to its redemption price for bonds that
// can only be redeemed.
func (c *TreasuryClient) Catalog(ctx context.Context) ([]TreasuryBond, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+treasuryCatalogPath, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: treasury catalog: %v", apperrors.ErrMarketData, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: treasury catalog: %v", apperrors.ErrMarketData, err)
	}

	var payload treasuryResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: treasury catalog: %v", apperrors.ErrMarketData, err)
	}

	bonds := make([]TreasuryBond, len(payload.Response.TrsrBdTradgList))
	for i, entry := range payload.Response.TrsrBdTradgList {
		value := entry.TrsrBd.UntrInvstmtVal
		if value == 0 {
			value = entry.TrsrBd.UntrRedVal
		}
		bonds[i] = TreasuryBond{Name: entry.TrsrBd.Nm, UnitValue: value}
	}
	return bonds, nil
}
