package models

// Part is a spare part held in plant inventory. QuantityAvailable is only
// ever decremented through the version-guarded deduction in the store
// gateway; Version is the optimistic-concurrency token for that write.
type Part struct {
	ID                string `json:"id,omitempty" yaml:"id"`
	PartNumber        string `json:"partNumber" yaml:"partNumber"`
	Description       string `json:"description,omitempty" yaml:"description,omitempty"`
	QuantityAvailable int    `json:"quantityAvailable" yaml:"quantityAvailable"`
	Category          string `json:"category,omitempty" yaml:"category,omitempty"`
	Location          string `json:"location,omitempty" yaml:"location,omitempty"`
	Version           int64  `json:"version" yaml:"version,omitempty"`
}
