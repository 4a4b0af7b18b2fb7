package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ternarybob/salecaption/internal/models"
)

func printCaptions(w io.Writer, items []models.AnalyzedItem) {
	for i, item := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "=== %s [%s] ===\n", item.FileName, item.StoreKey)
		if item.Caption != "" {
			fmt.Fprintln(w, strings.TrimSpace(item.Caption))
		}
		for _, d := range item.Diagnostics {
			fmt.Fprintf(w, "! %s\n", d.Message())
		}
	}
}

func printStores(w io.Writer, catalog *models.Catalog) {
	for _, s := range catalog.Stores {
		custom := ""
		if s.Custom {
			custom = " (custom)"
		}
		fmt.Fprintf(w, "%s%s\n", s.Key, custom)
		for _, t := range s.SaleTypes {
			kind := "evergreen"
			if t.IsSaleBased() {
				kind = t.DateFormat
			}
			fmt.Fprintf(w, "  %-20s %s [%s]\n", t.Key, t.Name, kind)
		}
	}
}
