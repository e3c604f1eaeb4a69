package model

// AssetGroup is a named collection of declared entries. Entries may be leaf
// assets or nested groups; their declared order is preserved everywhere
// downstream (it drives both aggregation layout and color assignment).
type AssetGroup struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

func (*AssetGroup) isEntry() {}
