// Package session holds the single mutable record shared by every task agent
// of one caller session. One session is one sequential stream of tool calls;
// nothing here is safe for concurrent mutation and nothing needs to be.
package session

import (
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/jirayus/restaurant-voice-agent/agent/contract"
	"github.com/jirayus/restaurant-voice-agent/agent/stage"
)

// Context is the per-caller customer record. Zero values mean "not provided
// yet"; validation is deferred to the gate checks at transition time, so the
// field setters stay dumb on purpose.
type Context struct {
	CustomerName  string
	CustomerPhone string

	ReservationDate string
	ReservationTime string
	PartySize       int
	TableNumber     int

	Order []string

	CardNumber string
	CardExpiry string
	CardCVV    string

	Expense    float64
	CheckedOut bool

	agents    map[contract.StageName]*stage.TaskAgent
	prevAgent *stage.TaskAgent
}

func New(agents map[contract.StageName]*stage.TaskAgent) *Context {
	if agents == nil {
		agents = map[contract.StageName]*stage.TaskAgent{}
	}
	return &Context{agents: agents}
}

// Agent looks up a stage agent in the fixed registry.
func (c *Context) Agent(name contract.StageName) (*stage.TaskAgent, bool) {
	a, ok := c.agents[name]
	return a, ok
}

// PrevAgent is the agent that was active before the last hand-off, nil until
// the first transfer. Only the hand-off controller writes it.
func (c *Context) PrevAgent() *stage.TaskAgent {
	return c.prevAgent
}

func (c *Context) SetPrevAgent(a *stage.TaskAgent) {
	c.prevAgent = a
}

func (c *Context) SetCustomerName(name string) {
	c.CustomerName = name
}

func (c *Context) SetCustomerPhone(phone string) {
	c.CustomerPhone = phone
}

func (c *Context) SetReservation(date, timeSlot string, partySize, tableNumber int) {
	c.ReservationDate = date
	c.ReservationTime = timeSlot
	c.PartySize = partySize
	c.TableNumber = tableNumber
}

func (c *Context) SetOrder(items []string) {
	c.Order = items
}

func (c *Context) SetCard(number, expiry, cvv string) {
	c.CardNumber = number
	c.CardExpiry = expiry
	c.CardCVV = cvv
}

func (c *Context) SetExpense(amount float64) {
	c.Expense = amount
}

func (c *Context) MarkCheckedOut() {
	c.CheckedOut = true
}

type cardSummary struct {
	Number string `yaml:"number"`
	Expiry string `yaml:"expiry"`
	CVV    string `yaml:"cvv"`
}

type contextSummary struct {
	CustomerName    string       `yaml:"customer_name"`
	CustomerPhone   string       `yaml:"customer_phone"`
	ReservationDate string       `yaml:"reservation_date"`
	ReservationTime string       `yaml:"reservation_time"`
	PartySize       any          `yaml:"num_people"`
	TableNumber     any          `yaml:"table_number"`
	Order           any          `yaml:"order"`
	CreditCard      *cardSummary `yaml:"credit_card,omitempty"`
	Expense         any          `yaml:"expense"`
	CheckedOut      bool         `yaml:"checked_out"`
}

// Summarize renders the customer data as a YAML block with "unknown" for
// unset fields. The credit-card block is left out entirely until a card
// number exists. Field order is fixed by the summary struct, so the output
// is stable for a given context.
//
// YAML reads better than JSON for re-grounding the next stage's prompt.
func (c *Context) Summarize() string {
	s := contextSummary{
		CustomerName:    orUnknown(c.CustomerName),
		CustomerPhone:   orUnknown(c.CustomerPhone),
		ReservationDate: orUnknown(c.ReservationDate),
		ReservationTime: orUnknown(c.ReservationTime),
		PartySize:       positiveOrUnknown(c.PartySize),
		TableNumber:     positiveOrUnknown(c.TableNumber),
		CheckedOut:      c.CheckedOut,
	}

	if len(c.Order) > 0 {
		s.Order = c.Order
	} else {
		s.Order = "unknown"
	}

	if strings.TrimSpace(c.CardNumber) != "" {
		s.CreditCard = &cardSummary{
			Number: c.CardNumber,
			Expiry: orUnknown(c.CardExpiry),
			CVV:    orUnknown(c.CardCVV),
		}
	}

	if c.Expense > 0 {
		s.Expense = c.Expense
	} else {
		s.Expense = "unknown"
	}

	out, err := yaml.Marshal(&s)
	if err != nil {
		// unreachable for a plain struct; keep the contract of never failing
		log.Warn().Err(err).Msg("summarize marshal failed")
		return ""
	}
	return string(out)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}

func positiveOrUnknown(n int) any {
	if n <= 0 {
		return "unknown"
	}
	return n
}
