package gengo

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type UnitType string

const (
	UnitWord      UnitType = "word"
	UnitCharacter UnitType = "character"
)

func parseUnitType(s string) UnitType {
	switch UnitType(s) {
	case UnitWord, UnitCharacter:
		return UnitType(s)
	}
	return ""
}

// Language is identified by its code; the other fields are informational.
type Language struct {
	Code          string   `json:"code"`
	Name          string   `json:"name,omitempty"`
	LocalizedName string   `json:"localized_name,omitempty"`
	UnitType      UnitType `json:"unit_type,omitempty"`
}

func Lang(code string) Language {
	return Language{Code: code}
}

func (l Language) Equal(o Language) bool {
	return l.Code == o.Code
}

func (l Language) String() string {
	if l.Name != "" {
		return l.Name
	}
	return l.Code
}

type Tier string

const (
	TierStandard Tier = "standard"
	TierPro      Tier = "pro"
	TierUltra    Tier = "ultra"
)

// ParseTier reports false for anything but the three service tiers.
func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierStandard, TierPro, TierUltra:
		return Tier(s), true
	}
	return "", false
}

type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	JPY Currency = "JPY"
	GBP Currency = "GBP"
)

func ParseCurrency(s string) (Currency, bool) {
	switch Currency(s) {
	case USD, EUR, JPY, GBP:
		return Currency(s), true
	}
	return "", false
}

// Money is a value carrier; no arithmetic is defined on it.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency"`
}

func (m Money) String() string {
	return string(m.Currency) + m.Amount.String()
}

type LanguagePair struct {
	Source Language `json:"source"`
	Target Language `json:"target"`
	Tier   Tier     `json:"tier"`
	Price  *Money   `json:"price,omitempty"`
}

func NewLanguagePair(source, target string, tier Tier) LanguagePair {
	return LanguagePair{Source: Lang(source), Target: Lang(target), Tier: tier}
}

func (p LanguagePair) String() string {
	return fmt.Sprintf("%s: %s -> %s", p.Tier, p.Source, p.Target)
}

type JobType string

const (
	JobText JobType = "text"
	JobFile JobType = "file"
)

type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusAvailable  JobStatus = "available"
	StatusPending    JobStatus = "pending"
	StatusReviewable JobStatus = "reviewable"
	StatusApproved   JobStatus = "approved"
	StatusRevising   JobStatus = "revising"
	StatusRejected   JobStatus = "rejected"
	StatusCanceled   JobStatus = "canceled"
)

func parseJobStatus(s string) JobStatus {
	switch st := JobStatus(s); st {
	case StatusQueued, StatusAvailable, StatusPending, StatusReviewable,
		StatusApproved, StatusRevising, StatusRejected, StatusCanceled:
		return st
	}
	return ""
}

// ParseJobStatus accepts the status names used in job filters.
func ParseJobStatus(s string) (JobStatus, bool) {
	st := parseJobStatus(s)
	return st, st != ""
}

// File is a named binary payload attached to a file job.
type File struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"-"`
}

const defaultMIMEType = "application/octet-stream"

func NewFile(name string, data []byte) File {
	return File{Name: name, Data: data, MIMEType: mimeTypeOf(name)}
}

// ReadFile loads a local file as a job payload.
func ReadFile(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read source file: %w", err)
	}
	return NewFile(filepath.Base(path), b), nil
}

func mimeTypeOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return defaultMIMEType
	}
	t := mime.TypeByExtension(strings.ToLower(ext))
	if t == "" {
		return defaultMIMEType
	}
	if mt, _, err := mime.ParseMediaType(t); err == nil {
		return mt
	}
	return t
}

const slugRunes = 15

// Job is a translation work unit. Jobs are values: operations return updated
// copies and never modify the caller's slice.
type Job struct {
	Pair       *LanguagePair `json:"language_pair,omitempty"`
	Type       JobType       `json:"type,omitempty"`
	SourceText string        `json:"body_src,omitempty"`
	SourceFile *File         `json:"source_file,omitempty"`
	Slug       string        `json:"slug,omitempty"`

	AutoApprove  *bool `json:"auto_approve,omitempty"`
	Force        *bool `json:"force,omitempty"`
	UsePreferred *bool `json:"use_preferred,omitempty"`
	AsGroup      *bool `json:"as_group,omitempty"`

	// Identifier links a job to a file uploaded through QuoteFile.
	Identifier  string `json:"identifier,omitempty"`
	Comment     string `json:"comment,omitempty"`
	CustomData  string `json:"custom_data,omitempty"`
	Position    string `json:"position,omitempty"`
	Purpose     string `json:"purpose,omitempty"`
	Tone        string `json:"tone,omitempty"`
	CallbackURL string `json:"callback_url,omitempty"`
	MaxChars    *int   `json:"max_chars,omitempty"`

	ID         *int       `json:"job_id,omitempty"`
	OrderID    *int       `json:"order_id,omitempty"`
	TargetText string     `json:"body_tgt,omitempty"`
	Credit     *Money     `json:"credit,omitempty"`
	ETA        *int       `json:"eta,omitempty"`
	UnitCount  *int       `json:"unit_count,omitempty"`
	Status     JobStatus  `json:"status,omitempty"`
	CreatedAt  *time.Time `json:"ctime,omitempty"`
}

// NewTextJob returns a text job with its slug derived from text.
func NewTextJob(pair LanguagePair, text string) Job {
	j := Job{Pair: &pair}
	j.SetSourceText(text)
	return j
}

func NewFileJob(pair LanguagePair, f File) Job {
	j := Job{Pair: &pair}
	j.SetSourceFile(&f)
	return j
}

// SetSourceText makes j a text job. The slug is derived from text only when
// none is set yet.
func (j *Job) SetSourceText(text string) {
	j.SourceText = text
	j.SourceFile = nil
	j.Type = JobText
	if j.Slug == "" && text != "" {
		j.Slug = deriveSlug(text)
	}
}

// SetSourceFile makes j a file job; a nil file clears the type.
func (j *Job) SetSourceFile(f *File) {
	j.SourceFile = f
	if f == nil {
		j.Type = ""
		return
	}
	j.SourceText = ""
	j.Type = JobFile
}

func deriveSlug(text string) string {
	r := []rune(text)
	if len(r) <= slugRunes {
		return text
	}
	return string(r[:slugRunes]) + "..."
}

// Clone returns a copy that shares no pointers with j.
func (j Job) Clone() Job {
	c := j
	if j.Pair != nil {
		p := *j.Pair
		if p.Price != nil {
			m := *p.Price
			p.Price = &m
		}
		c.Pair = &p
	}
	if j.SourceFile != nil {
		f := *j.SourceFile
		c.SourceFile = &f
	}
	c.AutoApprove = cloneBool(j.AutoApprove)
	c.Force = cloneBool(j.Force)
	c.UsePreferred = cloneBool(j.UsePreferred)
	c.AsGroup = cloneBool(j.AsGroup)
	c.MaxChars = cloneInt(j.MaxChars)
	c.ID = cloneInt(j.ID)
	c.OrderID = cloneInt(j.OrderID)
	c.ETA = cloneInt(j.ETA)
	c.UnitCount = cloneInt(j.UnitCount)
	if j.Credit != nil {
		m := *j.Credit
		c.Credit = &m
	}
	if j.CreatedAt != nil {
		t := *j.CreatedAt
		c.CreatedAt = &t
	}
	return c
}

func (j Job) String() string {
	if j.Pair == nil {
		return "Job(<no language pair>)"
	}
	return "Job(" + j.Pair.String() + ")"
}

type Order struct {
	ID       *int   `json:"order_id,omitempty"`
	Credit   *Money `json:"credit,omitempty"`
	JobCount *int   `json:"job_count,omitempty"`
	Jobs     []Job  `json:"jobs,omitempty"`
	AsGroup  bool   `json:"as_group"`
	Units    *int   `json:"total_units,omitempty"`
}

func (o Order) String() string {
	if o.ID == nil {
		return "Order#?"
	}
	return fmt.Sprintf("Order#%d", *o.ID)
}

type Account struct {
	CreditsSpent   *decimal.Decimal `json:"credits_spent,omitempty"`
	CreditsPresent *decimal.Decimal `json:"credits,omitempty"`
	Currency       Currency         `json:"currency,omitempty"`
	Since          *time.Time       `json:"user_since,omitempty"`
}

type Translator struct {
	ID       *int          `json:"id,omitempty"`
	JobCount *int          `json:"number_of_jobs,omitempty"`
	Pair     *LanguagePair `json:"language_pair,omitempty"`
}

type Glossary struct {
	ID              *int       `json:"id,omitempty"`
	SourceLanguage  *Language  `json:"source_language,omitempty"`
	TargetLanguages []Language `json:"target_languages"`
	IsPublic        bool       `json:"is_public"`
	UnitCount       *int       `json:"unit_count,omitempty"`
	Description     string     `json:"description,omitempty"`
	Title           string     `json:"title,omitempty"`
	Status          *int       `json:"status,omitempty"`
	CreatedAt       *time.Time `json:"ctime,omitempty"`
}

type Revision struct {
	ID        *int       `json:"rev_id,omitempty"`
	Body      string     `json:"body_tgt,omitempty"`
	CreatedAt *time.Time `json:"ctime,omitempty"`
}

type Feedback struct {
	Rating        *int   `json:"rating,omitempty"`
	ForTranslator string `json:"for_translator,omitempty"`
	ForGengo      string `json:"for_mygengo,omitempty"`
	IsPublic      *bool  `json:"public,omitempty"`
}

type Author string

const (
	AuthorCustomer Author = "customer"
	AuthorWorker   Author = "worker"
)

type Comment struct {
	Body      string     `json:"body,omitempty"`
	Author    Author     `json:"author,omitempty"`
	CreatedAt *time.Time `json:"ctime,omitempty"`
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Bool and Int return pointers for the optional job fields.
func Bool(v bool) *bool { return &v }

func Int(v int) *int { return &v }
