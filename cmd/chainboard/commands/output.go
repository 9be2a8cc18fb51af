package commands

import (
	"encoding/json"
	"fmt"
	"os"
)

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printKV writes one aligned label/value line.
func printKV(label, value string) {
	fmt.Printf("%-22s %s\n", label, value)
}

// printHeader writes a result section title.
func printHeader(title string) {
	fmt.Println(title)
}
