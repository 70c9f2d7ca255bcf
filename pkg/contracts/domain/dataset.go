package domain

// Dataset is the enriched measurement table of one hemisphere together with
// the metadata of the cores it contains
type Dataset struct {
	Hemisphere Hemisphere        `json:"hemisphere"`
	Rows       []CoreMeasurement `json:"rows"`
	Cores      []CoreMetadata    `json:"cores"`
}

// Len returns the number of measurement rows
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Datasets is the output of one resolution run
type Datasets struct {
	Greenland  *Dataset `json:"greenland"`
	Antarctica *Dataset `json:"antarctica"`
	// Unassigned counts rows with latitude exactly zero
	Unassigned int `json:"unassigned"`
}

// All returns the hemisphere datasets in a fixed order
func (d *Datasets) All() []*Dataset {
	return []*Dataset{d.Greenland, d.Antarctica}
}
