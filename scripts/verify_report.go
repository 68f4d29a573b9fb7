package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

var sheetName = regexp.MustCompile(`^Grupo \d+$`)

var passthrough = []string{"Producto", "Descripción", "Marca"}

func main() {
	// Check which file to verify
	filename := "output/Todos_Grupos_Resultados.xlsx"
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}

	f, err := excelize.OpenFile(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	fmt.Printf("=== REPORT CHECK: %s ===\n", filename)

	problems := 0
	for _, sheet := range f.GetSheetList() {
		if !sheetName.MatchString(sheet) {
			fmt.Printf("❌ Unexpected sheet name %q\n", sheet)
			problems++
		}

		rows, err := f.GetRows(sheet)
		if err != nil {
			log.Fatal(err)
		}
		if len(rows) == 0 {
			fmt.Printf("❌ %s: no header row\n", sheet)
			problems++
			continue
		}

		header := rows[0]
		for i, want := range passthrough {
			if i >= len(header) || header[i] != want {
				fmt.Printf("❌ %s: column %d should be %q\n", sheet, i+1, want)
				problems++
			}
		}

		empty := 0
		for _, row := range rows[1:] {
			if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
				empty++
			}
		}
		if empty > 0 {
			fmt.Printf("⚠️  %s: %d row(s) without Producto\n", sheet, empty)
		}

		fmt.Printf("%s: %d row(s), %d column(s)\n", sheet, len(rows)-1, len(header))
	}

	if problems > 0 {
		fmt.Printf("\n❌ %d problem(s) found\n", problems)
		os.Exit(1)
	}
	fmt.Println("\n✅ Report looks good")
}
