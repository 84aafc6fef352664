package cookie

// FrequencyTable counts cookie occurrences for a single query. It remembers
// the order cookies were first seen and the highest count so far.
type FrequencyTable struct {
	counts map[string]int
	order  []string
	max    int
}

// NewFrequencyTable returns an empty table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[string]int)}
}

// Add counts one more occurrence of cookie and returns its new count.
func (t *FrequencyTable) Add(cookie string) int {
	n, seen := t.counts[cookie]
	if !seen {
		t.order = append(t.order, cookie)
	}
	n++
	t.counts[cookie] = n
	if n > t.max {
		t.max = n
	}
	return n
}

// Count returns how many times cookie was added.
func (t *FrequencyTable) Count(cookie string) int {
	return t.counts[cookie]
}

// Max returns the highest count in the table, 0 when empty.
func (t *FrequencyTable) Max() int {
	return t.max
}

// Len returns the number of distinct cookies.
func (t *FrequencyTable) Len() int {
	return len(t.order)
}

// Mode returns every cookie whose count equals Max, in first-seen order.
// An empty table yields an empty, non-nil slice.
func (t *FrequencyTable) Mode() []string {
	mode := []string{}
	for _, c := range t.order {
		if t.counts[c] == t.max {
			mode = append(mode, c)
		}
	}
	return mode
}

// Tally counts the cookies of records into a fresh FrequencyTable.
func Tally(records []Record) *FrequencyTable {
	t := NewFrequencyTable()
	for _, r := range records {
		t.Add(r.Cookie)
	}
	return t
}

// Aggregate returns the mode set of records: all cookies tied at the
// highest count. Empty input gives an empty set.
func Aggregate(records []Record) []string {
	return Tally(records).Mode()
}
