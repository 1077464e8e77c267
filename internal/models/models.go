package models

import "time"

// Reference data. States, Cities and Establishments are loaded once at
// startup and never mutated afterwards; concurrent reads are safe without
// coordination.

type State struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	UF   string `json:"uf"`
}

type City struct {
	ID         int     `json:"id"`
	StateID    int     `json:"state_id"`
	Name       string  `json:"name"`
	Slug       string  `json:"slug,omitempty"`
	Active     bool    `json:"active"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Population int     `json:"population,omitempty"`
}

type Establishment struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	CategoryID  int     `json:"category_id"`
	SubCategory string  `json:"sub_category"`
	Address     string  `json:"address"`
	CityID      int     `json:"city_id"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Rating      float64 `json:"rating"`
	WhatsApp    string  `json:"whatsapp"`
}

// SearchIntent is a coarse category of user need inferred from free text.
// Priority is a display/ops signal only; it never participates in scoring.
type SearchIntent struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Active   bool   `json:"active"`
	Priority int    `json:"priority"`
}

// KeywordEntry associates one literal keyword with one intent. Weight must be
// positive. Entries are kept in a slice because table order is the tie-break
// for equal scores.
type KeywordEntry struct {
	IntentID int    `json:"intent_id"`
	Keyword  string `json:"keyword"`
	Weight   int    `json:"weight"`
}

// IntentTypeMapping maps an intent to a suggested establishment-type label.
// Weight is carried for future ranking use; selection currently ignores it.
type IntentTypeMapping struct {
	IntentID  int    `json:"intent_id"`
	TypeLabel string `json:"type"`
	Weight    int    `json:"weight"`
}

type ScoredIntent struct {
	Intent SearchIntent `json:"intent"`
	Score  int          `json:"score"`
}

// Suggestion is the per-query result of intent scoring plus type suggestion:
// at most 3 intents by descending score, at most 8 distinct type labels.
type Suggestion struct {
	Intents []SearchIntent `json:"intents"`
	Types   []string       `json:"types"`
}

type ResultKind string

const (
	ResultEstablishments ResultKind = "establishments"
	ResultCities         ResultKind = "cities"
)

// SearchResultSet is the tagged result of a directory search. Callers branch
// on Kind instead of sniffing field presence: a query that matches no
// establishment falls back to a city-name search and returns ResultCities.
type SearchResultSet struct {
	Kind           ResultKind      `json:"kind"`
	Establishments []Establishment `json:"establishments,omitempty"`
	Cities         []City          `json:"cities,omitempty"`
}

func (s *SearchResultSet) Len() int {
	switch s.Kind {
	case ResultCities:
		return len(s.Cities)
	default:
		return len(s.Establishments)
	}
}

// Registration is a pending establishment submission. It lives in the
// registrations store, never in the read-only catalog.
type Registration struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CategoryID   int       `json:"category_id"`
	SubCategory  string    `json:"sub_category"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone,omitempty"`
	WhatsApp     string    `json:"whatsapp,omitempty"`
	Website      string    `json:"website,omitempty"`
	Hours        string    `json:"hours,omitempty"`
	Description  string    `json:"description,omitempty"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	MapsLink     string    `json:"maps_link,omitempty"`
	CityID       int       `json:"city_id"`
	UserID       string    `json:"user_id,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegistrationEvent is published to Kafka when a registration is accepted,
// feeding the background enrichment worker.
type RegistrationEvent struct {
	RegistrationID string    `json:"registration_id"`
	Name           string    `json:"name"`
	CityID         int       `json:"city_id"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Timestamp      time.Time `json:"timestamp"`
}

// SearchLogEvent records one executed search for analytics.
type SearchLogEvent struct {
	Query     string    `json:"query"`
	CityID    int       `json:"city_id,omitempty"`
	Kind      string    `json:"kind"`
	Results   int       `json:"results"`
	TookMs    int64     `json:"took_ms"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type QueryPerformanceEvent struct {
	EventType  string    `json:"event_type"`
	QueryHash  string    `json:"query_hash"`
	QueryType  string    `json:"query_type"`
	DurationMs float64   `json:"duration_ms"`
	Results    int64     `json:"results"`
	Timestamp  time.Time `json:"timestamp"`
	TraceID    string    `json:"trace_id"`
	Source     string    `json:"source"`
}

// Grounding data links assistant narrative text to map or web sources.

type GroundingLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type MapsChunk struct {
	URI      string             `json:"uri"`
	Title    string             `json:"title"`
	Location *GroundingLocation `json:"location,omitempty"`
}

type WebChunk struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type GroundingChunk struct {
	Maps *MapsChunk `json:"maps,omitempty"`
	Web  *WebChunk  `json:"web,omitempty"`
}

// AssistantMessage is one turn of the assistant conversation.
type AssistantMessage struct {
	Role            string           `json:"role"`
	Text            string           `json:"text"`
	GroundingChunks []GroundingChunk `json:"grounding_chunks,omitempty"`
}
