package entity

import "time"

// TenantOrg es la organización (administradora de propiedades) dueña de los datos.
// Todas las entidades de negocio cuelgan de una organización; el aislamiento
// multi-tenant se aplica filtrando por TenantOrgID en cada consulta.
type TenantOrg struct {
	ID        int64
	OrgCode   string
	OrgName   string
	LegalName string
	Email     string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrgSettings parámetros contables y regionales de una organización.
// BaseCurrency es la moneda del libro mayor: toda valuación base se expresa en ella.
type OrgSettings struct {
	ID                   int64
	TenantOrgID          int64
	BaseCurrency         string
	CountryCode          string
	Timezone             string
	Locale               string
	FiscalYearStartMonth int
	TaxInclusive         bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
