// Package searchkit provides a Go client for a spatiotemporal document
// retrieval backend: text and spatiotemporal search, autocomplete with
// debounced sessions, IP geolocation, and map-ready view models.
//
//	client, _ := searchkit.New("http://localhost:9200-proxy",
//	    searchkit.WithTimeout(10*time.Second),
//	)
//	out, _ := client.Search(ctx, searchkit.SearchRequest{
//	    Mode:  searchkit.Spatiotemporal,
//	    Query: "flood",
//	    Place: "Nablus",
//	    Start: "2019-01-01",
//	    End:   "2020-01-01",
//	})
//	for _, card := range out.Cards {
//	    fmt.Println(card.Title, card.Score)
//	}
//
// Autocomplete sessions debounce keystrokes and drop stale responses:
//
//	session := client.NewSession(func(s []searchkit.Suggestion, err error) {
//	    // called with the suggestions for the latest input only
//	})
//	session.Input("jer")
//	session.Input("jeru") // supersedes the previous input
//	defer session.Close()
package searchkit
