package domain

import (
	"context"
	"encoding/json"
	"io"
)

// Importance is the urgency level printed on a letter.
type Importance string

const (
	ImportanceNormal     Importance = "Normal"
	ImportanceUrgent     Importance = "Urgent"
	ImportanceVeryUrgent Importance = "Très Urgent"
)

// Importances lists the values accepted by the extraction schema, in schema order.
func Importances() []Importance {
	return []Importance{ImportanceNormal, ImportanceUrgent, ImportanceVeryUrgent}
}

// IsValid reports whether i is one of the enumerated importance levels.
func (i Importance) IsValid() bool {
	for _, v := range Importances() {
		if i == v {
			return true
		}
	}
	return false
}

// Schema property names. They are also the JSON keys of ExtractionResult.
const (
	FieldSenderService   = "senderService"
	FieldReceiverService = "receiverService"
	FieldDate            = "date"
	FieldLetterNumber    = "letterNumber"
	FieldSubject         = "subject"
	FieldImportance      = "importance"
	FieldBody            = "body"
)

// RequiredFields returns the seven properties every extraction must fill.
func RequiredFields() []string {
	return []string{
		FieldSenderService,
		FieldReceiverService,
		FieldDate,
		FieldLetterNumber,
		FieldSubject,
		FieldImportance,
		FieldBody,
	}
}

// ExtractionSchema is the JSON Schema sent to the provider with every call.
type ExtractionSchema map[string]any

// NewExtractionSchema builds the letter schema. Descriptions are forwarded to
// the provider as-is and steer its field extraction.
func NewExtractionSchema() ExtractionSchema {
	importance := make([]string, 0, len(Importances()))
	for _, v := range Importances() {
		importance = append(importance, string(v))
	}

	return ExtractionSchema{
		"type": "object",
		"properties": map[string]any{
			FieldSenderService:   stringProp("Le nom du service qui envoie la lettre"),
			FieldReceiverService: stringProp("Le nom du service à qui la lettre est adressée"),
			FieldDate:            stringProp("La date de la lettre"),
			FieldLetterNumber:    stringProp("Le numéro de référence de la lettre"),
			FieldSubject:         stringProp("L'objet de la lettre"),
			FieldImportance: map[string]any{
				"type": "string",
				"enum": importance,
			},
			FieldBody: stringProp("Le corps(les paragraphes) de la lettre"),
		},
		"required":             RequiredFields(),
		"additionalProperties": false,
	}
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

// ExtractionConfig holds the provider tuning options. Nil pointers are sent
// as JSON null so the provider applies its own default.
type ExtractionConfig struct {
	Priority           *string `json:"priority"`
	ExtractionTarget   string  `json:"extraction_target"`
	ExtractionMode     string  `json:"extraction_mode"`
	ParseModel         *string `json:"parse_model"`
	ExtractModel       *string `json:"extract_model"`
	MultimodalFastMode bool    `json:"multimodal_fast_mode"`
	SystemPrompt       *string `json:"system_prompt"`
	UseReasoning       bool    `json:"use_reasoning"`
	CiteSources        bool    `json:"cite_sources"`
	CitationBBox       bool    `json:"citation_bbox"`
	ConfidenceScores   bool    `json:"confidence_scores"`
	ChunkMode          string  `json:"chunk_mode"`
	HighResolutionMode bool    `json:"high_resolution_mode"`
	InvalidateCache    bool    `json:"invalidate_cache"`
	NumPagesContext    *int    `json:"num_pages_context"`
	PageRange          *string `json:"page_range"`
}

// DefaultExtractionConfig returns the configuration used for every letter:
// premium quality, one result per document, page chunking, and every
// reasoning, citation and confidence feature turned off.
func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		ExtractionTarget: "PER_DOC",
		ExtractionMode:   "PREMIUM",
		ChunkMode:        "PAGE",
	}
}

// ExtractionResult is the structured letter returned to the caller.
type ExtractionResult struct {
	SenderService   string     `json:"senderService"`
	ReceiverService string     `json:"receiverService"`
	Date            string     `json:"date"`
	LetterNumber    string     `json:"letterNumber"`
	Subject         string     `json:"subject"`
	Importance      Importance `json:"importance"`
	Body            string     `json:"body"`
}

// UploadedDocument is the raw upload owned by a single request.
type UploadedDocument struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// StagedFile is the temporary local copy of an upload.
type StagedFile struct {
	// Path is the file handed to the provider.
	Path string
	// Dir is the per-request directory holding Path; removing it removes the artifact.
	Dir  string
	Size int64
}

// ExtractionProvider runs a schema-driven extraction on a local file and
// returns the provider's raw data object.
type ExtractionProvider interface {
	Extract(ctx context.Context, schema ExtractionSchema, config ExtractionConfig, filePath string) (json.RawMessage, error)
}

// StagingArea materialises uploads on local disk for the provider.
type StagingArea interface {
	Stage(doc *UploadedDocument) (*StagedFile, error)
	Remove(file *StagedFile) error
}

// ExtractionService is the gateway operation exposed over HTTP.
type ExtractionService interface {
	Extract(ctx context.Context, doc *UploadedDocument) (*ExtractionResult, error)
}
