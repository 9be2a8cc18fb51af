package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"chainboard/internal/api"
)

// AddCustomerModal collects one routing customer: name, coordinates, demand.
type AddCustomerModal struct {
	form *Form
}

// Ensure AddCustomerModal implements View.
var _ View = (*AddCustomerModal)(nil)

// NewAddCustomerModal creates an empty customer form.
func NewAddCustomerModal() *AddCustomerModal {
	return &AddCustomerModal{
		form: NewForm(
			NewTextField("Name", "Customer", "optional"),
			NewField("Latitude", "40.71", "-90 to 90"),
			NewField("Longitude", "-74.00", "-180 to 180"),
			NewField("Demand", "100", "units"),
		),
	}
}

// Init implements View.
func (m *AddCustomerModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (m *AddCustomerModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "tab", "down":
			m.form.Next()
			return m, nil
		case "shift+tab", "up":
			m.form.Prev()
			return m, nil
		case "enter":
			c, ok := m.customer()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return CustomerAddedMsg{Customer: c} }
		}
	}
	return m, m.form.Update(msg)
}

// customer parses and range-checks the form. Field errors are set inline.
func (m *AddCustomerModal) customer() (api.Location, bool) {
	m.form.ClearErrs()
	ok := true
	lat, err := parseFloat(m.form.Value(1))
	if err != nil || lat < -90 || lat > 90 {
		m.form.SetErr(1, "latitude must be between -90 and 90")
		ok = false
	}
	lon, err := parseFloat(m.form.Value(2))
	if err != nil || lon < -180 || lon > 180 {
		m.form.SetErr(2, "longitude must be between -180 and 180")
		ok = false
	}
	demand, err := parseFloat(m.form.Value(3))
	if err != nil || demand < 0 {
		m.form.SetErr(3, "demand must be zero or more")
		ok = false
	}
	if !ok {
		return api.Location{}, false
	}
	return api.Location{
		Name:   m.form.Value(0),
		Lat:    lat,
		Lon:    lon,
		Demand: demand,
	}, true
}

// View implements View.
func (m *AddCustomerModal) View() string {
	content := Styles.Title.Render("Add customer") + "\n\n"
	content += m.form.View() + "\n"
	content += Styles.Hint.Render("Enter: add  Tab: next field  Esc: cancel")
	return Styles.Box.Render(content)
}
