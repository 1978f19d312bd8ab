package gcal

import (
	"net/url"
	"strconv"
	"strings"
)

// queryParams is an ordered set of URL query parameters. A parameter only
// appears in the encoded string if it was set; zero and false are valid
// values and are preserved. net/url's Values.Encode sorts keys, which would
// lose the insertion order the API tests rely on, so encoding is done here.
type queryParams struct {
	pairs []queryPair
}

type queryPair struct {
	key, value string
}

func (q *queryParams) set(key, value string) {
	q.pairs = append(q.pairs, queryPair{key, value})
}

func (q *queryParams) setInt(key string, v int64) {
	q.set(key, strconv.FormatInt(v, 10))
}

func (q *queryParams) setBool(key string, v bool) {
	q.set(key, strconv.FormatBool(v))
}

// encode renders the parameters as a URL query string, percent-encoding
// both keys and values, in insertion order. Empty set encodes to "".
func (q *queryParams) encode() string {
	var b strings.Builder
	for i, p := range q.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}
