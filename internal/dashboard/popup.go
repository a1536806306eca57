package dashboard

import (
	"bytes"
	"html/template"
	"strconv"

	"fomezero/internal"
)

var popupTemplate = template.Must(template.New("popup").Parse(
	`<p><strong>{{.Name}}</strong></p>` +
		`<p>Price: {{.Cost}},00 ({{.Currency}}) for two` +
		`<br />Type: {{.Cuisine}}` +
		`<br />Aggregate Rating: {{.Rating}}/5.0</p>`,
))

// Popup renders the marker popup of a restaurant. Values are HTML escaped.
func Popup(r internal.CanonicalRecord) (string, error) {
	var buf bytes.Buffer
	err := popupTemplate.Execute(&buf, struct {
		Name     string
		Cost     int
		Currency string
		Cuisine  string
		Rating   string
	}{
		Name:     r.RestaurantName,
		Cost:     r.AverageCostForTwo,
		Currency: r.Currency,
		Cuisine:  r.Cuisines,
		Rating:   strconv.FormatFloat(r.AggregateRating, 'f', 1, 64),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
