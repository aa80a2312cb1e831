package gengo

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Wire shapes of the API payloads. Every scalar uses a loose type so a bad
// field degrades to absent without disturbing its neighbours.

type wireMoney struct {
	Credits      looseDecimal `json:"credits"`
	CreditsUsed  looseDecimal `json:"credits_used"`
	TotalCredits looseDecimal `json:"total_credits"`
	Currency     looseString  `json:"currency"`
}

// money tries credits, then credits_used, then total_credits.
func (w wireMoney) money() *Money {
	var amount looseDecimal
	switch {
	case w.Credits.ok:
		amount = w.Credits
	case w.CreditsUsed.ok:
		amount = w.CreditsUsed
	case w.TotalCredits.ok:
		amount = w.TotalCredits
	default:
		return nil
	}
	if amount.v.IsNegative() || !w.Currency.ok {
		return nil
	}
	cur, ok := ParseCurrency(w.Currency.v)
	if !ok {
		return nil
	}
	return &Money{Amount: amount.v, Currency: cur}
}

type wirePair struct {
	wireMoney
	LcSrc looseString `json:"lc_src"`
	LcTgt looseString `json:"lc_tgt"`
	Tier  looseString `json:"tier"`
}

func (w wirePair) pair() *LanguagePair {
	if !w.LcSrc.ok || !w.LcTgt.ok || !w.Tier.ok {
		return nil
	}
	tier, ok := ParseTier(w.Tier.v)
	if !ok {
		return nil
	}
	return &LanguagePair{
		Source: Lang(w.LcSrc.v),
		Target: Lang(w.LcTgt.v),
		Tier:   tier,
		Price:  w.money(),
	}
}

type wireJob struct {
	wirePair
	JobID       looseInt    `json:"job_id"`
	OrderID     looseInt    `json:"order_id"`
	Slug        looseString `json:"slug"`
	BodySrc     looseString `json:"body_src"`
	BodyTgt     looseString `json:"body_tgt"`
	AutoApprove looseBool   `json:"auto_approve"`
	ETA         looseInt    `json:"eta"`
	UnitCount   looseInt    `json:"unit_count"`
	Status      looseString `json:"status"`
	Ctime       looseTime   `json:"ctime"`
	Identifier  looseString `json:"identifier"`
	Title       looseString `json:"title"`
}

func (w wireJob) job() Job {
	return Job{
		Pair:        w.pair(),
		Type:        JobText,
		SourceText:  w.BodySrc.v,
		TargetText:  w.BodyTgt.v,
		Slug:        w.Slug.v,
		AutoApprove: w.AutoApprove.ptr(),
		Identifier:  w.Identifier.v,
		Credit:      w.money(),
		ETA:         w.ETA.ptr(),
		ID:          w.JobID.ptr(),
		OrderID:     w.OrderID.ptr(),
		UnitCount:   w.UnitCount.ptr(),
		Status:      parseJobStatus(w.Status.v),
		CreatedAt:   w.Ctime.ptr(),
	}
}

// ParseJob maps a single job object, as found in job responses and in the
// service's status callbacks.
func ParseJob(raw []byte) (Job, error) {
	if _, ok := decodeValue(raw).(map[string]any); !ok {
		return Job{}, fmt.Errorf("gengo: job payload is not a JSON object")
	}
	var w wireJob
	if err := decodeLenient(raw, &w); err != nil {
		return Job{}, fmt.Errorf("gengo: decode job: %w", err)
	}
	return w.job(), nil
}

func mapJobList(raw json.RawMessage) []Job {
	var ws []wireJob
	_ = decodeLenient(raw, &ws)
	out := make([]Job, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.job())
	}
	return out
}

func mapJobsByID(raw json.RawMessage) []Job {
	var payload struct {
		Jobs json.RawMessage `json:"jobs"`
	}
	_ = decodeLenient(raw, &payload)
	return mapJobList(payload.Jobs)
}

func mapSingleJob(raw json.RawMessage) *Job {
	var payload struct {
		Job json.RawMessage `json:"job"`
	}
	_ = decodeLenient(raw, &payload)
	if isJSONNull(payload.Job) {
		return nil
	}
	j, err := ParseJob(payload.Job)
	if err != nil {
		return nil
	}
	return &j
}

// jobIndex recovers the position encoded in a synthetic "job_<n>" key.
func jobIndex(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, "job_")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

func jobKey(i int) string {
	return "job_" + strconv.Itoa(i+1)
}

// mapQuote returns enriched copies of the submitted jobs, ordered by their
// position in submitted. Keys that do not resolve to a submitted job are
// ignored.
func mapQuote(submitted []Job, raw json.RawMessage) []Job {
	var payload struct {
		Jobs map[string]wireJob `json:"jobs"`
	}
	_ = decodeLenient(raw, &payload)

	type indexed struct {
		i   int
		job Job
	}
	found := make([]indexed, 0, len(payload.Jobs))
	for key, w := range payload.Jobs {
		i, ok := jobIndex(key)
		if !ok || i >= len(submitted) {
			continue
		}
		j := submitted[i].Clone()
		j.Credit = w.money()
		j.ETA = w.ETA.ptr()
		j.UnitCount = w.UnitCount.ptr()
		j.Identifier = w.Identifier.v
		if j.Slug == "" && w.Title.ok {
			j.Slug = w.Title.v
		}
		found = append(found, indexed{i: i, job: j})
	}
	sort.Slice(found, func(a, b int) bool { return found[a].i < found[b].i })

	out := make([]Job, 0, len(found))
	for _, f := range found {
		out = append(out, f.job)
	}
	return out
}

type wireOrder struct {
	wireMoney
	OrderID        looseInt   `json:"order_id"`
	JobCount       looseInt   `json:"job_count"`
	TotalJobs      looseInt   `json:"total_jobs"`
	AsGroup        looseBool  `json:"as_group"`
	TotalUnits     looseInt   `json:"total_units"`
	JobsQueued     looseValue `json:"jobs_queued"`
	JobsAvailable  looseValue `json:"jobs_available"`
	JobsPending    looseValue `json:"jobs_pending"`
	JobsReviewable looseValue `json:"jobs_reviewable"`
	JobsApproved   looseValue `json:"jobs_approved"`
	JobsRevising   looseValue `json:"jobs_revising"`
	JobsCancelled  looseValue `json:"jobs_cancelled"`
}

func (w wireOrder) order() Order {
	o := Order{
		ID:      w.OrderID.ptr(),
		Credit:  w.money(),
		AsGroup: w.AsGroup.v,
		Units:   w.TotalUnits.ptr(),
	}
	if w.JobCount.ok {
		o.JobCount = w.JobCount.ptr()
	} else {
		o.JobCount = w.TotalJobs.ptr()
	}
	groups := []struct {
		ids    any
		status JobStatus
	}{
		{w.JobsQueued.v, StatusQueued},
		{w.JobsAvailable.v, StatusAvailable},
		{w.JobsPending.v, StatusPending},
		{w.JobsReviewable.v, StatusReviewable},
		{w.JobsApproved.v, StatusApproved},
		{w.JobsRevising.v, StatusRevising},
		{w.JobsCancelled.v, StatusCanceled},
	}
	for _, g := range groups {
		ids, _ := g.ids.([]any)
		for _, raw := range ids {
			id, ok := toInt(raw)
			if !ok {
				continue
			}
			o.Jobs = append(o.Jobs, Job{ID: Int(id), OrderID: o.ID, Status: g.status})
		}
	}
	return o
}

func mapOrder(raw json.RawMessage) Order {
	var w wireOrder
	_ = decodeLenient(raw, &w)
	return w.order()
}

// mapCreatedOrder returns nil when the response names no order, which the
// API uses when every submitted job was a duplicate.
func mapCreatedOrder(raw json.RawMessage) *Order {
	var keys map[string]json.RawMessage
	_ = decodeLenient(raw, &keys)
	if _, ok := keys["order_id"]; !ok {
		return nil
	}
	o := mapOrder(raw)
	return &o
}

func mapFetchedOrder(raw json.RawMessage) *Order {
	var payload struct {
		Order json.RawMessage `json:"order"`
	}
	_ = decodeLenient(raw, &payload)
	if _, ok := decodeValue(payload.Order).(map[string]any); !ok {
		return nil
	}
	o := mapOrder(payload.Order)
	return &o
}

type wireAccount struct {
	CreditsSpent looseDecimal `json:"credits_spent"`
	Credits      looseDecimal `json:"credits"`
	Currency     looseString  `json:"currency"`
	UserSince    looseTime    `json:"user_since"`
}

func mapAccount(raw json.RawMessage) Account {
	var w wireAccount
	_ = decodeLenient(raw, &w)
	a := Account{
		CreditsSpent:   w.CreditsSpent.ptr(),
		CreditsPresent: w.Credits.ptr(),
		Since:          w.UserSince.ptr(),
	}
	if cur, ok := ParseCurrency(w.Currency.v); ok {
		a.Currency = cur
	}
	return a
}

func mapTranslators(raw json.RawMessage) []Translator {
	var groups []struct {
		wirePair
		Translators []struct {
			ID           looseInt `json:"id"`
			NumberOfJobs looseInt `json:"number_of_jobs"`
		} `json:"translators"`
	}
	_ = decodeLenient(raw, &groups)
	var out []Translator
	for _, g := range groups {
		pair := g.pair()
		for _, t := range g.Translators {
			tr := Translator{ID: t.ID.ptr(), JobCount: t.NumberOfJobs.ptr()}
			if pair != nil {
				p := *pair
				tr.Pair = &p
			}
			out = append(out, tr)
		}
	}
	return out
}

func mapLanguages(raw json.RawMessage) []Language {
	var ws []struct {
		Lc            looseString `json:"lc"`
		Language      looseString `json:"language"`
		LocalizedName looseString `json:"localized_name"`
		UnitType      looseString `json:"unit_type"`
	}
	_ = decodeLenient(raw, &ws)
	out := make([]Language, 0, len(ws))
	for _, w := range ws {
		if !w.Lc.ok || !w.UnitType.ok {
			continue
		}
		out = append(out, Language{
			Code:          w.Lc.v,
			Name:          w.Language.v,
			LocalizedName: w.LocalizedName.v,
			UnitType:      parseUnitType(w.UnitType.v),
		})
	}
	return out
}

func mapLanguagePairs(raw json.RawMessage) []LanguagePair {
	var ws []wirePair
	_ = decodeLenient(raw, &ws)
	out := make([]LanguagePair, 0, len(ws))
	for _, w := range ws {
		if p := w.pair(); p != nil {
			out = append(out, *p)
		}
	}
	return out
}

type wireGlossary struct {
	ID              looseInt    `json:"id"`
	SourceLanguage  looseString `json:"source_language_code"`
	TargetLanguages looseValue  `json:"target_languages"`
	IsPublic        looseBool   `json:"is_public"`
	UnitCount       looseInt    `json:"unit_count"`
	Description     looseString `json:"description"`
	Title           looseString `json:"title"`
	Status          looseInt    `json:"status"`
	Ctime           looseTime   `json:"ctime"`
}

func (w wireGlossary) glossary() Glossary {
	g := Glossary{
		ID:              w.ID.ptr(),
		TargetLanguages: []Language{},
		IsPublic:        w.IsPublic.v,
		UnitCount:       w.UnitCount.ptr(),
		Description:     w.Description.v,
		Title:           w.Title.v,
		Status:          w.Status.ptr(),
		CreatedAt:       w.Ctime.ptr(),
	}
	if w.SourceLanguage.ok {
		l := Lang(w.SourceLanguage.v)
		g.SourceLanguage = &l
	}
	// Targets arrive as [id, code] pairs; only the code is kept.
	targets, _ := w.TargetLanguages.v.([]any)
	for _, t := range targets {
		pair, ok := t.([]any)
		if !ok || len(pair) < 2 {
			continue
		}
		if code, ok := pair[1].(string); ok {
			g.TargetLanguages = append(g.TargetLanguages, Lang(code))
		}
	}
	return g
}

func mapGlossaries(raw json.RawMessage) []Glossary {
	var ws []wireGlossary
	_ = decodeLenient(raw, &ws)
	out := make([]Glossary, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.glossary())
	}
	return out
}

// mapGlossary requires a numeric id; anything else means no glossary.
func mapGlossary(raw json.RawMessage) *Glossary {
	var w wireGlossary
	_ = decodeLenient(raw, &w)
	if !w.ID.ok {
		return nil
	}
	g := w.glossary()
	return &g
}

type wireRevision struct {
	RevID   looseInt    `json:"rev_id"`
	BodyTgt looseString `json:"body_tgt"`
	Ctime   looseTime   `json:"ctime"`
}

func (w wireRevision) revision() Revision {
	return Revision{ID: w.RevID.ptr(), Body: w.BodyTgt.v, CreatedAt: w.Ctime.ptr()}
}

func mapRevisions(raw json.RawMessage) []Revision {
	var payload struct {
		Revisions []wireRevision `json:"revisions"`
	}
	_ = decodeLenient(raw, &payload)
	out := make([]Revision, 0, len(payload.Revisions))
	for _, w := range payload.Revisions {
		out = append(out, w.revision())
	}
	return out
}

func mapRevision(raw json.RawMessage) *Revision {
	var payload struct {
		Revision *wireRevision `json:"revision"`
	}
	_ = decodeLenient(raw, &payload)
	if payload.Revision == nil {
		return nil
	}
	r := payload.Revision.revision()
	return &r
}

func mapFeedback(raw json.RawMessage) *Feedback {
	var payload struct {
		Feedback *struct {
			Rating        looseInt    `json:"rating"`
			ForTranslator looseString `json:"for_translator"`
			ForGengo      looseString `json:"for_mygengo"`
			Public        looseBool   `json:"public"`
		} `json:"feedback"`
	}
	_ = decodeLenient(raw, &payload)
	if payload.Feedback == nil {
		return nil
	}
	f := payload.Feedback
	return &Feedback{
		Rating:        f.Rating.ptr(),
		ForTranslator: f.ForTranslator.v,
		ForGengo:      f.ForGengo.v,
		IsPublic:      f.Public.ptr(),
	}
}

type wireComment struct {
	Body   looseString `json:"body"`
	Author looseString `json:"author"`
	Ctime  looseTime   `json:"ctime"`
	JobID  looseInt    `json:"job_id"`
}

func (w wireComment) comment() Comment {
	c := Comment{Body: w.Body.v, CreatedAt: w.Ctime.ptr()}
	switch a := Author(w.Author.v); a {
	case AuthorCustomer, AuthorWorker:
		c.Author = a
	}
	return c
}

func mapComments(raw json.RawMessage) []Comment {
	var payload struct {
		Thread []wireComment `json:"thread"`
	}
	_ = decodeLenient(raw, &payload)
	out := make([]Comment, 0, len(payload.Thread))
	for _, w := range payload.Thread {
		out = append(out, w.comment())
	}
	return out
}

// ParseComment maps the comment object of a comment callback and returns the
// id of the job it belongs to, nil when absent.
func ParseComment(raw []byte) (*int, Comment, error) {
	if _, ok := decodeValue(raw).(map[string]any); !ok {
		return nil, Comment{}, fmt.Errorf("gengo: comment payload is not a JSON object")
	}
	var w wireComment
	if err := decodeLenient(raw, &w); err != nil {
		return nil, Comment{}, fmt.Errorf("gengo: decode comment: %w", err)
	}
	return w.JobID.ptr(), w.comment(), nil
}
