package testutil

import (
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"
	"github.com/batchatco/go-native-netcdf/netcdf/util"

	"sumupcli/pkg/contracts/domain"
)

// ArchiveDimension is the single row dimension of fixture archives
const ArchiveDimension = "nrows"

// WriteArchiveFile writes rows as a classic netCDF file at path with the
// column types of the published archive: float64 measurements and Date,
// int32 Citation.
func WriteArchiveFile(path string, rows ...ArchiveRow) error {
	n := len(rows)
	columns := map[string][]float64{
		domain.VarLatitude:   make([]float64, n),
		domain.VarLongitude:  make([]float64, n),
		domain.VarDate:       make([]float64, n),
		domain.VarDensity:    make([]float64, n),
		domain.VarStartDepth: make([]float64, n),
		domain.VarStopDepth:  make([]float64, n),
		domain.VarMidpoint:   make([]float64, n),
		domain.VarElevation:  make([]float64, n),
		domain.VarError:      make([]float64, n),
	}
	citations := make([]int32, n)
	for i, r := range rows {
		columns[domain.VarLatitude][i] = r.Lat
		columns[domain.VarLongitude][i] = r.Lon
		columns[domain.VarDate][i] = float64(r.Date)
		columns[domain.VarDensity][i] = r.Density
		columns[domain.VarStartDepth][i] = r.StartDepth
		columns[domain.VarStopDepth][i] = r.StopDepth
		columns[domain.VarMidpoint][i] = r.Midpoint
		columns[domain.VarElevation][i] = r.Elevation
		columns[domain.VarError][i] = r.Error
		citations[i] = int32(r.Citation)
	}

	w, err := cdf.OpenWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create archive %s: %w", path, err)
	}

	for _, name := range domain.ArchiveVariables {
		var values interface{} = columns[name]
		if name == domain.VarCitation {
			values = citations
		}
		if err := addVar(w, name, values); err != nil {
			w.Close()
			return err
		}
	}

	return w.Close()
}

type varAdder interface {
	AddVar(name string, v api.Variable) error
}

func addVar(w varAdder, name string, values interface{}) error {
	attrs, err := util.NewOrderedMap(
		[]string{"long_name"},
		map[string]interface{}{"long_name": name})
	if err != nil {
		return err
	}
	err = w.AddVar(name, api.Variable{
		Values:     values,
		Dimensions: []string{ArchiveDimension},
		Attributes: attrs,
	})
	if err != nil {
		return fmt.Errorf("failed to add variable %s: %w", name, err)
	}
	return nil
}
