package services

import (
	"context"
	"time"

	"github.com/localnerve/wastedash/internal/calc"
	"github.com/localnerve/wastedash/internal/models"
	"gorm.io/gorm"
)

// TenantResolver resolves an active tenant by slug.
type TenantResolver interface {
	Resolve(ctx context.Context, slug string) (*TenantInfo, error)
}

// ContextProvider turns a slug into a TenantContext.
type ContextProvider struct {
	resolver TenantResolver
	db       *gorm.DB
}

// NewContextProvider creates a ContextProvider reading waste data from db.
func NewContextProvider(resolver TenantResolver, db *gorm.DB) *ContextProvider {
	return &ContextProvider{resolver: resolver, db: db}
}

// Load resolves slug. It returns types.ErrTenantNotFound before touching any waste data.
func (p *ContextProvider) Load(ctx context.Context, slug string) (*TenantContext, error) {
	info, err := p.resolver.Resolve(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &TenantContext{info: info, db: p.db}, nil
}

// TenantContext is a resolved tenant bound to the store. Every data method is scoped to
// the resolved tenant id; there is no way to pass another.
type TenantContext struct {
	info *TenantInfo
	db   *gorm.DB
}

// Info returns the resolved tenant.
func (t *TenantContext) Info() *TenantInfo { return t.info }

// ID returns the tenant id.
func (t *TenantContext) ID() uint64 { return t.info.Tenant.ID }

// Slug returns the tenant slug.
func (t *TenantContext) Slug() string { return t.info.Tenant.Slug }

// DisplayName is the tenant name, or its slug when unnamed.
func (t *TenantContext) DisplayName() string {
	if t.info.Tenant.Name != "" {
		return t.info.Tenant.Name
	}
	return t.info.Tenant.Slug
}

// FeatureEnabled reports the tenant's flag for feature.
func (t *TenantContext) FeatureEnabled(feature string) bool {
	return t.info.FeatureEnabled(feature)
}

// Setting returns the effective value of a setting.
func (t *TenantContext) Setting(key string) (string, bool) {
	v, ok := t.info.Settings[key]
	return v, ok
}

func (t *TenantContext) Observations(ctx context.Context, r *DateRange) ([]models.WasteObservation, error) {
	return ListObservations(ctx, t.db, t.ID(), r)
}

func (t *TenantContext) Observation(ctx context.Context, id uint64) (*models.WasteObservation, error) {
	return GetObservation(ctx, t.db, t.ID(), id)
}

func (t *TenantContext) Insert(ctx context.Context, in ObservationInput) (*models.WasteObservation, error) {
	return InsertObservation(ctx, t.db, t.ID(), in)
}

func (t *TenantContext) Update(ctx context.Context, id uint64, patch ObservationPatch) (*models.WasteObservation, error) {
	return UpdateObservation(ctx, t.db, t.ID(), id, patch)
}

func (t *TenantContext) Summary(ctx context.Context, w Window) (*Summary, error) {
	return Summarize(ctx, t.db, t.ID(), w)
}

func (t *TenantContext) Years(ctx context.Context) (*ReportingYears, error) {
	return ListReportingYears(ctx, t.db, t.ID())
}

func (t *TenantContext) RegisterDocument(ctx context.Context, in DocumentInput) (*models.SourceDocument, error) {
	return RegisterDocument(ctx, t.db, t.ID(), in)
}

func (t *TenantContext) Recalculate(ctx context.Context, opts RecalcOptions) (*RecalcResult, error) {
	return Recalculate(ctx, t.db, t.ID(), opts)
}

// ReportTenant is the branding a report renders.
type ReportTenant struct {
	ID             uint64  `json:"id"`
	Slug           string  `json:"slug"`
	DisplayName    string  `json:"displayName"`
	Logo           *string `json:"logo,omitempty"`
	PrimaryColor   *string `json:"primaryColor,omitempty"`
	SecondaryColor *string `json:"secondaryColor,omitempty"`
}

// ReportData is everything a report renderer needs, pre-scoped to one tenant.
type ReportData struct {
	Tenant         ReportTenant              `json:"tenant"`
	Settings       map[string]string         `json:"settings"`
	From           *time.Time                `json:"from,omitempty"`
	To             *time.Time                `json:"to,omitempty"`
	GeneratedAt    time.Time                 `json:"generatedAt"`
	FormulaVersion int                       `json:"formulaVersion"`
	Observations   []models.WasteObservation `json:"observations"`
	Totals         Totals                    `json:"totals"`
}

// Report gathers the tenant's observations in r with their totals.
func (t *TenantContext) Report(ctx context.Context, r *DateRange) (*ReportData, error) {
	observations, err := t.Observations(ctx, r)
	if err != nil {
		return nil, err
	}

	var acc accumulator
	for i := range observations {
		acc.addObservation(&observations[i])
	}

	tenant := t.info.Tenant
	report := &ReportData{
		Tenant: ReportTenant{
			ID:             tenant.ID,
			Slug:           tenant.Slug,
			DisplayName:    t.DisplayName(),
			Logo:           tenant.Logo,
			PrimaryColor:   tenant.PrimaryColor,
			SecondaryColor: tenant.SecondaryColor,
		},
		Settings:       t.info.Settings,
		GeneratedAt:    time.Now().UTC(),
		FormulaVersion: calc.FormulaVersion,
		Observations:   observations,
		Totals:         acc.totals(false),
	}
	if r != nil {
		if !r.From.IsZero() {
			report.From = &r.From
		}
		if !r.To.IsZero() {
			report.To = &r.To
		}
	}
	if report.Observations == nil {
		report.Observations = []models.WasteObservation{}
	}
	return report, nil
}
