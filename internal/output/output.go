package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/lanehart/udpscout/internal/scan"
)

// Format is a supported rendering format
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name from the command line
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatText:
		return FormatText, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", name)
	}
}

// Formatter renders scan results in a chosen format
type Formatter struct {
	format Format
}

// NewFormatter returns a formatter for the given format
func NewFormatter(format Format) *Formatter {
	return &Formatter{format: format}
}

// Render writes the results to w in the formatter's format
func (f *Formatter) Render(w io.Writer, results []*scan.Result) error {
	switch f.format {
	case FormatCSV:
		return renderCSV(w, results)
	case FormatJSON:
		return renderJSON(w, results)
	default:
		return renderText(w, results)
	}
}

// jsonEnvelope is the top level JSON output shape
type jsonEnvelope struct {
	ScanTime      string         `json:"scan_time"`
	TotalServices int            `json:"total_services"`
	Services      []*scan.Result `json:"services"`
}

func renderJSON(w io.Writer, results []*scan.Result) error {
	if results == nil {
		results = []*scan.Result{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(jsonEnvelope{
		ScanTime:      time.Now().Format(time.RFC3339),
		TotalServices: len(results),
		Services:      results,
	})
}

func renderText(w io.Writer, results []*scan.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No responsive services found.")
		return err
	}

	divider := strings.Repeat("=", 60)

	fmt.Fprintf(w, "\n%s\n", divider)
	fmt.Fprintf(w, "Found %d responsive UDP services\n", len(results))
	fmt.Fprintf(w, "%s\n\n", divider)

	for _, result := range results {
		service := result.Service

		if service == "" {
			service = "Unknown"
		}

		fmt.Fprintf(w, "[+] %s:%d - %s\n", result.Target, result.Port, service)

		if result.Status != scan.StatusOpen {
			fmt.Fprintf(w, "    Status: %s\n", result.Status)
		}

		for _, key := range sortedDetailKeys(result) {
			fmt.Fprintf(w, "    %s: %v\n", key, result.Details[key])
		}

		fmt.Fprintln(w)
	}

	return nil
}

func renderCSV(w io.Writer, results []*scan.Result) error {
	if len(results) == 0 {
		return nil
	}

	// base columns plus the union of flattened details_* columns
	fieldSet := map[string]bool{
		"target":        true,
		"port":          true,
		"service":       true,
		"status":        true,
		"response_size": true,
	}

	for _, result := range results {
		if result.Error != "" {
			fieldSet["error"] = true
		}

		for key := range result.Details {
			fieldSet["details_"+key] = true
		}
	}

	fields := make([]string, 0, len(fieldSet))

	for field := range fieldSet {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	writer := csv.NewWriter(w)

	if err := writer.Write(fields); err != nil {
		return err
	}

	for _, result := range results {
		row := make([]string, len(fields))

		for i, field := range fields {
			switch field {
			case "target":
				row[i] = result.Target
			case "port":
				row[i] = fmt.Sprintf("%d", result.Port)
			case "service":
				row[i] = result.Service
			case "status":
				row[i] = string(result.Status)
			case "response_size":
				row[i] = fmt.Sprintf("%d", result.ResponseSize)
			case "error":
				row[i] = result.Error
			default:
				key := strings.TrimPrefix(field, "details_")

				if value, ok := result.Details[key]; ok {
					row[i] = fmt.Sprintf("%v", value)
				}
			}
		}

		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()

	return writer.Error()
}

func sortedDetailKeys(result *scan.Result) []string {
	keys := make([]string, 0, len(result.Details))

	for key := range result.Details {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
