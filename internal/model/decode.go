package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/wealthmap/wealthmap-backend/internal/apperrors"
)

// DecodeObject parses one raw document entry as a JSON object. Anything that
// is not an object (null included) is a shape error.
func DecodeObject(raw json.RawMessage) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: expected an object, got: %s", apperrors.ErrInvalidDocument, compact(raw))
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: expected an object, got null", apperrors.ErrInvalidDocument)
	}
	return obj, nil
}

// IsAssetEntry reports whether a decoded entry declares a leaf asset, i.e.
// carries a non-empty "type" field.
func IsAssetEntry(obj map[string]json.RawMessage) bool {
	return truthy(obj["type"])
}

// IsGroupEntry reports whether a decoded entry declares a sub-group, i.e.
// carries an "entries" field.
func IsGroupEntry(obj map[string]json.RawMessage) bool {
	return truthy(obj["entries"])
}

// truthy mirrors the loose presence check used on declared documents: the
// field must exist and not be null, false, zero, or the empty string. An
// empty array counts as present.
func truthy(raw json.RawMessage) bool {
	v := string(bytes.TrimSpace(raw))
	switch v {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}

// DecodeGroupShell validates the group-level shape of a decoded entry and
// returns its name together with its still-undecoded child entries. Child
// validation is the caller's job so that errors can carry the breadcrumb
// path of the failing entry.
func DecodeGroupShell(obj map[string]json.RawMessage) (string, []json.RawMessage, error) {
	var name string
	if raw, ok := obj["name"]; !ok || json.Unmarshal(raw, &name) != nil || name == "" {
		return "", nil, fmt.Errorf("%w: expected group to have a name, but got: %s",
			apperrors.ErrInvalidDocument, compact(obj["name"]))
	}
	rawEntries, ok := obj["entries"]
	if !ok {
		return "", nil, fmt.Errorf("%w: expected group %q to have entries", apperrors.ErrInvalidDocument, name)
	}
	// Unmarshaling null into a slice succeeds as a no-op, so require an
	// actual array literal before decoding.
	trimmed := bytes.TrimSpace(rawEntries)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return "", nil, fmt.Errorf("%w: expected entries of group %q to be an array, but got: %s",
			apperrors.ErrInvalidDocument, name, compact(rawEntries))
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(rawEntries, &entries); err != nil {
		return "", nil, fmt.Errorf("%w: expected entries of group %q to be an array, but got: %s",
			apperrors.ErrInvalidDocument, name, compact(rawEntries))
	}
	return name, entries, nil
}

// DecodeAsset decodes a raw leaf entry into its concrete asset variant based
// on the "type" discriminant. An unknown discriminant is fatal.
func DecodeAsset(raw json.RawMessage) (Asset, error) {
	obj, err := DecodeObject(raw)
	if err != nil {
		return nil, err
	}
	var typ AssetType
	if err := json.Unmarshal(obj["type"], &typ); err != nil {
		return nil, fmt.Errorf("%w: expected type to be a string, but got: %s",
			apperrors.ErrInvalidDocument, compact(obj["type"]))
	}

	var asset Asset
	switch typ {
	case TypeCashReserve:
		asset = &CashReserve{}
	case TypeCryptoCurrency:
		asset = &CryptoCurrency{}
	case TypePrivateCreditBR:
		asset = &PrivateCreditBR{}
	case TypeTreasuryBR:
		asset = &TreasuryBR{}
	case TypeSharesBR:
		asset = &SharesBR{}
	case TypeSharesUS:
		asset = &SharesUS{}
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownAssetType, typ)
	}

	if err := json.Unmarshal(raw, asset); err != nil {
		return nil, fmt.Errorf("%w: malformed %s asset: %v", apperrors.ErrInvalidDocument, typ, err)
	}
	return asset, nil
}

// compact renders a raw fragment for error messages, bounded so a huge
// sub-document does not flood the log.
func compact(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "<missing>"
	}
	s := string(bytes.TrimSpace(raw))
	if len(s) > 80 {
		s = s[:77] + "..."
	}
	return s
}
