// internal/interpreter/cities.go
package interpreter

// knownCities is the fallback lookup table used when the query has no
// "in/at/near" connector. Scan order is the order below: the first city
// found anywhere in the lowercased query wins, not the leftmost in the
// text. That matches the shipped behavior and is deliberately left as is.
var knownCities = []string{
	"mumbai",
	"delhi",
	"bangalore",
	"bengaluru",
	"hyderabad",
	"chennai",
	"kolkata",
	"pune",
	"ahmedabad",
	"jaipur",
	"surat",
	"lucknow",
	"kanpur",
	"nagpur",
	"indore",
	"bhopal",
	"patna",
	"vadodara",
	"coimbatore",
	"kochi",
	"chandigarh",
	"goa",
	"noida",
	"gurgaon",
}

// fillerPrefixes are leading phrases stripped from the business type
// candidate. Longer phrases first so "tell me about" goes before "tell".
var fillerPrefixes = []string{
	"tell me about",
	"i want to open",
	"i want to start",
	"looking to open",
	"looking to start",
	"show me",
	"open",
	"start",
	"find",
	"a",
	"an",
	"the",
}

// trailingPrepositions are dropped from the end of the business type
// candidate when the connector match leaves one behind.
var trailingPrepositions = []string{
	"in",
	"at",
	"near",
}
