package eventstore

import (
	"slices"
	"strings"
)

type FilterEventTypeString = string
type FilterKeyString = string
type FilterValString = string

/***** Filter *****/

// Filter selects a "dynamic event stream": events matching ANY of its FilterItem(s).
// An empty Filter matches every event.
type Filter struct {
	items []FilterItem
}

func (f Filter) Items() []FilterItem {
	return f.items
}

// IsEmpty reports whether the Filter matches every event.
func (f Filter) IsEmpty() bool {
	return len(f.items) == 0
}

/***** FilterItem *****/

// FilterItem matches events having ANY of its event types AND ANY (or ALL) of its predicates.
// A missing part (no event types, no predicates) does not restrict.
type FilterItem struct {
	eventTypes             []FilterEventTypeString
	predicates             []FilterPredicate
	allPredicatesMustMatch bool
}

func (fi FilterItem) EventTypes() []FilterEventTypeString {
	return fi.eventTypes
}

func (fi FilterItem) Predicates() []FilterPredicate {
	return fi.predicates
}

func (fi FilterItem) AllPredicatesMustMatch() bool {
	return fi.allPredicatesMustMatch
}

/***** FilterPredicate *****/

// FilterPredicate is a top-level key/value pair the event payload JSON must contain.
type FilterPredicate struct {
	key FilterKeyString
	val FilterValString
}

func P(key FilterKeyString, val FilterValString) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() FilterKeyString {
	return fp.key
}

func (fp FilterPredicate) Val() FilterValString {
	return fp.val
}

/***** FilterBuilder *****/

// FilterBuilder builds a generic event filter to be used by the engine implementations to build queries.
// It only allows the combinations the reservation workflows need:
//
//   - empty filter
//   - (eventType OR eventType...)
//   - (predicate OR predicate...) / (predicate AND predicate...)
//   - ((eventType OR eventType...) AND (predicate OR predicate...))
//   - ((eventType OR eventType...) AND (predicate AND predicate...))
//   - multiple of the above combined with OR -> multiple FilterItem(s)
type FilterBuilder interface {
	// Matching starts a new FilterItem.
	Matching() EmptyFilterItemBuilder

	// MatchingAnyEvent directly creates an empty Filter.
	MatchingAnyEvent() Filter
}

type EmptyFilterItemBuilder interface {
	// AnyEventTypeOf adds one or multiple EventTypes to the current FilterItem.
	AnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) FilterItemBuilderLackingPredicates

	// AnyPredicateOf adds one or multiple FilterPredicate(s), ANY of them must match.
	AnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder

	// AllPredicatesOf adds one or multiple FilterPredicate(s), ALL of them must match.
	AllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder
}

type FilterItemBuilderLackingPredicates interface {
	// AndAnyPredicateOf adds one or multiple FilterPredicate(s), ANY of them must match.
	AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder

	// AndAllPredicatesOf adds one or multiple FilterPredicate(s), ALL of them must match.
	AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder

	CompletedFilterItemBuilder
}

type CompletedFilterItemBuilder interface {
	// OrMatching finalizes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// Finalize returns the Filter.
	Finalize() Filter
}

// filterBuilder implements all the interfaces of FilterBuilder
type filterBuilder struct {
	filter            Filter
	currentFilterItem FilterItem
}

// BuildEventFilter creates a FilterBuilder which must eventually be finalized with Finalize() or MatchingAnyEvent().
func BuildEventFilter() FilterBuilder {
	return filterBuilder{}
}

func (fb filterBuilder) Matching() EmptyFilterItemBuilder {
	fb.currentFilterItem = FilterItem{}

	return fb
}

// AnyEventTypeOf sanitizes the input: empty EventTypes are removed, the rest is sorted and deduplicated.
func (fb filterBuilder) AnyEventTypeOf(
	eventType FilterEventTypeString,
	eventTypes ...FilterEventTypeString,
) FilterItemBuilderLackingPredicates {

	allEventTypes := append([]FilterEventTypeString{eventType}, eventTypes...)
	allEventTypes = append(allEventTypes, fb.currentFilterItem.eventTypes...)
	allEventTypes = slices.DeleteFunc(allEventTypes, func(e FilterEventTypeString) bool { return e == "" })
	slices.Sort(allEventTypes)

	fb.currentFilterItem.eventTypes = slices.Clip(slices.Compact(allEventTypes))

	return fb
}

func (fb filterBuilder) AnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder {
	fb.currentFilterItem.predicates = fb.sanitizePredicates(predicate, predicates...)

	return fb
}

func (fb filterBuilder) AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder {
	return fb.AnyPredicateOf(predicate, predicates...)
}

func (fb filterBuilder) AllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder {
	fb.currentFilterItem.allPredicatesMustMatch = true
	fb.currentFilterItem.predicates = fb.sanitizePredicates(predicate, predicates...)

	return fb
}

func (fb filterBuilder) AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder {
	return fb.AllPredicatesOf(predicate, predicates...)
}

// sanitizePredicates removes partial predicates (key or val is ""), sorts by key and val and removes duplicates.
func (fb filterBuilder) sanitizePredicates(predicate FilterPredicate, predicates ...FilterPredicate) []FilterPredicate {
	allPredicates := append([]FilterPredicate{predicate}, predicates...)
	allPredicates = slices.DeleteFunc(allPredicates, func(p FilterPredicate) bool { return p.key == "" || p.val == "" })
	slices.SortFunc(allPredicates, func(a, b FilterPredicate) int {
		if byKey := strings.Compare(a.key, b.key); byKey != 0 {
			return byKey
		}

		return strings.Compare(a.val, b.val)
	})

	return slices.Clip(slices.Compact(allPredicates))
}

func (fb filterBuilder) OrMatching() EmptyFilterItemBuilder {
	fb.filter = fb.Finalize()
	fb.currentFilterItem = FilterItem{}

	return fb
}

func (fb filterBuilder) MatchingAnyEvent() Filter {
	return Filter{}
}

// Finalize appends the current FilterItem unless it is completely empty.
func (fb filterBuilder) Finalize() Filter {
	items := slices.Clone(fb.filter.items)

	if len(fb.currentFilterItem.eventTypes) > 0 || len(fb.currentFilterItem.predicates) > 0 {
		items = append(items, fb.currentFilterItem)
	}

	return Filter{items: items}
}
