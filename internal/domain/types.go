package domain

// Mode controls how queries are built and results filtered.
const (
	ModeDealer = "dealer"
	ModeBroad  = "broad"
)

// SearchRequest são os parâmetros normalizados de GET /api/leads
type SearchRequest struct {
	Keyword string `json:"keyword"`
	Country string `json:"country,omitempty"`
	Mode    string `json:"mode"`    // "dealer" ou "broad"
	Lang    string `json:"lang"`    // "auto" ou código explícito (en/es/pt/de/fr)
	Limit   int    `json:"limit"`   // clamped [1,20]
	Start   int    `json:"start,omitempty"`   // offset do CSE, ≥1 quando presente
	Enrich  bool   `json:"enrich,omitempty"`
}

// RawHit é um item bruto retornado pela Google Custom Search API.
type RawHit struct {
	Link        string `json:"link"`
	Title       string `json:"title"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"displayLink"`
}

// Lead é o dealer candidato retornado pela API
type Lead struct {
	Country   string   `json:"country"`
	Company   string   `json:"company"`
	Website   string   `json:"website"`
	SourceURL string   `json:"sourceUrl"`
	Score     int      `json:"score"`
	Tags      []string `json:"tags"`

	// Preenchidos apenas quando o enriquecimento rodou e encontrou algo
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	EmailScore int    `json:"emailScore,omitempty"`
	PhoneScore int    `json:"phoneScore,omitempty"`
}

// EnrichmentResult são os campos de contato descobertos no site do lead.
type EnrichmentResult struct {
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	EmailScore int    `json:"emailScore"`
	PhoneScore int    `json:"phoneScore"`
}

// Meta são os contadores do funil discover → filter → enrich.
type Meta struct {
	TotalItems          int `json:"totalItems"`
	UniqueDomains       int `json:"uniqueDomains"`
	FilteredByBlacklist int `json:"filteredByBlacklist"`
	FilteredByScore     int `json:"filteredByScore"`
	Kept                int `json:"kept"`
}

// LeadsResponse é a resposta de GET /api/leads
type LeadsResponse struct {
	OK      bool   `json:"ok"`
	Results []Lead `json:"results"`
	Meta    Meta   `json:"meta"`
	Cached  bool   `json:"cached,omitempty"`
}
