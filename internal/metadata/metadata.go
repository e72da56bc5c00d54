// Package metadata reads the aircraft metadata archive: a ZIP of CSV files
// named by the last two hex digits of the ICAO address, each line
// "icao,registration,type_designator,model,description,wake_category",
// sorted lexicographically by ICAO within each file.
package metadata

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"squitter1090/internal/icaotype"
	"squitter1090/internal/tracker"
)

// Archive is a read-only, lazily-opened aircraft metadata database backed
// by a ZIP archive. The zip.Reader is opened once and kept for the
// process lifetime; lookups scan the matching member file.
type Archive struct {
	zr *zip.Reader
}

// Open reads the ZIP archive from ra, which holds size bytes. ra must stay
// readable for the lifetime of the returned Archive; Archive has no Close
// method, so the caller closes whatever backs ra.
func Open(ra io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("metadata: failed to open archive: %w", err)
	}
	return &Archive{zr: zr}, nil
}

// wakeCategory maps the archive's single-letter wake turbulence code to
// its descriptive form.
func wakeCategory(code string) string {
	switch code {
	case "L":
		return "LIGHT"
	case "M":
		return "MEDIUM"
	case "H":
		return "HEAVY"
	default:
		return "UNKNOWN"
	}
}

// memberName returns the CSV member name for the given ICAO address: the
// last two hex digits, e.g. "4B17E5" -> "E5.csv".
func memberName(icao string) string {
	if len(icao) < 2 {
		return ""
	}
	return strings.ToUpper(icao[len(icao)-2:]) + ".csv"
}

// Lookup resolves icao to its metadata record via a linear scan of the
// matching member file, terminating early once the scanned key would sort
// after the sought address (the file is sorted lexicographically by ICAO).
func (a *Archive) Lookup(icao string) (tracker.Metadata, bool) {
	name := memberName(icao)
	if name == "" {
		return tracker.Metadata{}, false
	}

	f, err := a.zr.Open(name)
	if err != nil {
		return tracker.Metadata{}, false
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	for {
		rec, err := r.Read()
		if err == io.EOF {
			return tracker.Metadata{}, false
		}
		if err != nil {
			return tracker.Metadata{}, false
		}
		if len(rec) < 6 {
			continue
		}

		key := rec[0]
		if key == icao {
			if _, err := icaotype.NewICAOAddress(key); err != nil {
				return tracker.Metadata{}, false
			}
			registration, err := icaotype.NewRegistration(rec[1])
			if err != nil {
				return tracker.Metadata{}, false
			}
			typeDesignator, err := icaotype.NewTypeDesignator(rec[2])
			if err != nil {
				return tracker.Metadata{}, false
			}
			description, err := icaotype.NewDescription(rec[4])
			if err != nil {
				return tracker.Metadata{}, false
			}
			return tracker.Metadata{
				Registration:   string(registration),
				TypeDesignator: string(typeDesignator),
				Model:          rec[3],
				Description:    string(description),
				WakeCategory:   wakeCategory(rec[5]),
			}, true
		}
		if key > icao {
			return tracker.Metadata{}, false
		}
	}
}
