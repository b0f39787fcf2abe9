// seed genera el script SQL que puebla el catálogo de monedas ISO-4217 y el
// conjunto fijo de roles del sistema, a partir del XML oficial list_one.xml
// publicado por ISO.
//
// Uso: go run ./cmd/seed [ruta/list_one.xml]
// Por defecto busca list_one.xml en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalogs.sql
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type isoList struct {
	Table struct {
		Entries []ccyEntry `xml:"CcyNtry"`
	} `xml:"CcyTbl"`
}

type ccyEntry struct {
	CountryName string `xml:"CtryNm"`
	Name        string `xml:"CcyNm"`
	Code        string `xml:"Ccy"`
	MinorUnits  string `xml:"CcyMnrUnts"`
}

type currency struct {
	code       string
	name       string
	minorUnits int
}

func main() {
	xmlPath := "list_one.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var list isoList
	dec := xml.NewDecoder(f)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&list); err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	// Monedas únicas por código: la lista ISO repite cada moneda por país.
	ccyMap := make(map[string]currency)
	for _, e := range list.Table.Entries {
		code := strings.TrimSpace(e.Code)
		name := strings.TrimSpace(e.Name)
		if code == "" || name == "" {
			continue
		}
		minor, err := strconv.Atoi(strings.TrimSpace(e.MinorUnits))
		if err != nil {
			minor = 2 // "N.A." para monedas de fondos, default contable
		}
		ccyMap[code] = currency{code: code, name: name, minorUnits: minor}
	}

	var codes []string
	for c := range ccyMap {
		codes = append(codes, c)
	}
	sort.Strings(codes)

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalogs.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo de monedas ISO-4217 y roles del sistema\n")
	out.WriteString("-- Generado desde list_one.xml (ISO)\n\n")

	out.WriteString("-- 1. Monedas\n")
	out.WriteString("INSERT INTO currencies (currency_code, currency_name, minor_units, is_active) VALUES\n")
	for i, c := range codes {
		ccy := ccyMap[c]
		sep := ","
		if i == len(codes)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', %d, TRUE)%s\n", ccy.code, escapeSQL(ccy.name), ccy.minorUnits, sep)
	}
	out.WriteString("ON CONFLICT (currency_code) DO UPDATE SET currency_name = EXCLUDED.currency_name, minor_units = EXCLUDED.minor_units;\n\n")

	out.WriteString("-- 2. Roles del sistema\n")
	out.WriteString(`INSERT INTO roles (id, role_name, description, permissions, is_system, is_active) VALUES
  (1, 'admin', 'Superusuario del sistema', '{"all": true}', TRUE, TRUE),
  (2, 'manager', 'Gestión de portafolio y operación', '{"properties": true, "leasing": true, "maintenance": true, "billing": true}', TRUE, TRUE),
  (3, 'accountant', 'Facturación, pagos y libro multi-moneda', '{"billing": true, "finance": true, "accounting": true}', TRUE, TRUE),
  (4, 'support', 'Operación de mantenimiento', '{"maintenance": true, "operations": true}', TRUE, TRUE),
  (5, 'tenant', 'Portal del inquilino', '{"portal": true}', TRUE, TRUE),
  (6, 'owner', 'Portal del propietario', '{"portal": true}', TRUE, TRUE),
  (7, 'vendor', 'Portal del proveedor', '{"portal": true}', TRUE, TRUE)
ON CONFLICT (id) DO NOTHING;
SELECT setval('roles_id_seq', GREATEST((SELECT MAX(id) FROM roles), 7));
`)

	fmt.Printf("Generado %s: %d monedas, 7 roles\n", outPath, len(codes))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
