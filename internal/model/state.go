package model

// TrackerState is the root aggregate, persisted as one JSON document and
// round-tripped in full on every mutation.
type TrackerState struct {
	Profile         *UserProfile `bson:"profile,omitempty" json:"profile,omitempty"`
	Shows           []Show       `bson:"shows" json:"shows"`
	ShowOrder       []string     `bson:"showOrder,omitempty" json:"showOrder,omitempty"`
	OMDBAPIKey      string       `bson:"omdbApiKey,omitempty" json:"omdbApiKey,omitempty"`
	NotificationDay *int         `bson:"notificationDay,omitempty" json:"notificationDay,omitempty"`
}

// DefaultNotificationDay is the reminder lead time used when the document
// carries none.
const DefaultNotificationDay = 2

// EmptyState is what a missing or corrupt persisted document decodes to.
func EmptyState() TrackerState {
	return TrackerState{Shows: []Show{}}
}

// FindShow returns the show with the given imdbId, if present.
func (ts TrackerState) FindShow(imdbID string) (Show, bool) {
	for _, s := range ts.Shows {
		if s.ImdbID == imdbID {
			return s, true
		}
	}
	return Show{}, false
}

// EffectiveOrder is ShowOrder when set, otherwise the underlying array order.
func (ts TrackerState) EffectiveOrder() []string {
	if ts.ShowOrder != nil {
		return ts.ShowOrder
	}
	order := make([]string, 0, len(ts.Shows))
	for _, s := range ts.Shows {
		order = append(order, s.ImdbID)
	}
	return order
}

// OrderedShows maps the effective order through the show set, silently
// dropping ids with no matching show. Stale order entries are healed here on
// read, never written back.
func (ts TrackerState) OrderedShows() []Show {
	byID := make(map[string]Show, len(ts.Shows))
	for _, s := range ts.Shows {
		byID[s.ImdbID] = s
	}
	ordered := make([]Show, 0, len(ts.Shows))
	for _, id := range ts.EffectiveOrder() {
		if s, ok := byID[id]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered
}

// NotificationLeadDays is the stored lead time, defaulting when unset.
// Clamping to the permitted range is the caller's concern.
func (ts TrackerState) NotificationLeadDays() int {
	if ts.NotificationDay == nil {
		return DefaultNotificationDay
	}
	return *ts.NotificationDay
}
