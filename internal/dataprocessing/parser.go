package dataprocessing

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"

	apperrors "sumupcli/internal/errors"
	"sumupcli/pkg/contracts/domain"
)

// ParseArchive reads the SUMup density variables from the netCDF file at
// path. The file is opened read-only.
func ParseArchive(path string) (*domain.Archive, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("archive %s", path), err)
		}
		return nil, apperrors.NewParsingError(fmt.Sprintf("cannot access archive %s", path), err)
	}

	group, err := netcdf.Open(path)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open archive %s", path), err)
	}
	defer group.Close()

	return readArchive(path, group)
}

func readArchive(path string, group api.Group) (*domain.Archive, error) {
	values := make(map[string]interface{}, len(domain.ArchiveVariables))
	for _, name := range domain.ArchiveVariables {
		v, err := group.GetVariable(name)
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("archive %s has no variable %s", path, name), err)
		}
		values[name] = v.Values
	}
	return ArchiveFromValues(path, values)
}

// ArchiveFromValues builds an Archive from decoded variable values keyed by
// variable name. Every numeric slice type is accepted.
func ArchiveFromValues(source string, values map[string]interface{}) (*domain.Archive, error) {
	archive := &domain.Archive{Source: source}

	floatColumns := map[string]*[]float64{
		domain.VarLatitude:   &archive.Latitude,
		domain.VarLongitude:  &archive.Longitude,
		domain.VarDensity:    &archive.Density,
		domain.VarStartDepth: &archive.StartDepth,
		domain.VarStopDepth:  &archive.StopDepth,
		domain.VarMidpoint:   &archive.Midpoint,
		domain.VarElevation:  &archive.Elevation,
		domain.VarError:      &archive.Error,
	}
	intColumns := map[string]*[]int64{
		domain.VarDate:     &archive.Date,
		domain.VarCitation: &archive.Citation,
	}

	for _, name := range domain.ArchiveVariables {
		raw, ok := values[name]
		if !ok {
			return nil, apperrors.NewParsingError(fmt.Sprintf("archive %s has no variable %s", source, name), nil)
		}

		var err error
		if dst, isFloat := floatColumns[name]; isFloat {
			*dst, err = toFloat64s(raw)
		} else {
			*intColumns[name], err = toInt64s(raw)
		}
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("variable %s", name), err)
		}
	}

	n := archive.Len()
	for name, length := range archive.Lengths() {
		if length != n {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("variable %s has %d values, %s has %d", name, length, domain.VarLatitude, n), nil).
				WithContext("source", source)
		}
	}

	return archive, nil
}

type number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

func convertFloats[T number](in []T) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

func convertInts[T number](in []T) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		out[i] = int64(v)
	}
	return out
}

func toFloat64s(v interface{}) ([]float64, error) {
	switch vals := v.(type) {
	case []float64:
		return convertFloats(vals), nil
	case []float32:
		return convertFloats(vals), nil
	case []int8:
		return convertFloats(vals), nil
	case []int16:
		return convertFloats(vals), nil
	case []int32:
		return convertFloats(vals), nil
	case []int64:
		return convertFloats(vals), nil
	case []uint8:
		return convertFloats(vals), nil
	case []uint16:
		return convertFloats(vals), nil
	case []uint32:
		return convertFloats(vals), nil
	case []uint64:
		return convertFloats(vals), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// toInt64s truncates floating values toward zero; NaN and Inf become 0
func toInt64s(v interface{}) ([]int64, error) {
	switch vals := v.(type) {
	case []float64:
		return convertInts(vals), nil
	case []float32:
		return convertInts(vals), nil
	case []int8:
		return convertInts(vals), nil
	case []int16:
		return convertInts(vals), nil
	case []int32:
		return convertInts(vals), nil
	case []int64:
		return convertInts(vals), nil
	case []uint8:
		return convertInts(vals), nil
	case []uint16:
		return convertInts(vals), nil
	case []uint32:
		return convertInts(vals), nil
	case []uint64:
		return convertInts(vals), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}
