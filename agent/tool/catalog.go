// Package tool declares the callable surface of each stage agent and routes
// decoded tool calls to their handlers.
package tool

import (
	"github.com/cloudwego/eino/schema"

	"github.com/jirayus/restaurant-voice-agent/agent/contract"
	"github.com/jirayus/restaurant-voice-agent/agent/stage"
)

// InfosFor returns the tool schemas the model may call while the named stage
// is active. The lists mirror stage.TaskAgent.Tools.
func InfosFor(name contract.StageName) []*schema.ToolInfo {
	switch name {
	case contract.StageGreeter:
		return []*schema.ToolInfo{
			info(stage.ToolToReservation,
				"Called when user wants to make or update a reservation. Transitions to the reservation agent who collects the reservation time, customer name and phone number.",
				nil),
			info(stage.ToolToTakeaway,
				"Called when the user wants to place a takeaway order for pickup or delivery, or proceed to checkout with an existing order.",
				nil),
		}
	case contract.StageReservation:
		return []*schema.ToolInfo{
			info(stage.ToolUpdateReservation,
				"Called when the user provides their reservation time. Confirm the time with the user before calling.",
				map[string]*schema.ParameterInfo{
					"date":       {Type: schema.String, Desc: "The reservation date", Required: true},
					"time":       {Type: schema.String, Desc: "The reservation time", Required: true},
					"num_people": {Type: schema.Integer, Desc: "Number of people", Required: true},
				}),
			info(stage.ToolConfirmReservation,
				"Called when the user confirms the reservation.",
				nil),
			updateNameInfo(),
			updatePhoneInfo(),
			toGreeterInfo(),
		}
	case contract.StageTakeaway:
		return []*schema.ToolInfo{
			info(stage.ToolUpdateOrder,
				"Called when the user creates or updates their order.",
				map[string]*schema.ParameterInfo{
					"items": {
						Type:     schema.Array,
						Desc:     "The items of the full order",
						ElemInfo: &schema.ParameterInfo{Type: schema.String},
						Required: true,
					},
				}),
			info(stage.ToolToCheckout,
				"Called when the user confirms the order.",
				nil),
			toGreeterInfo(),
		}
	case contract.StageCheckout:
		return []*schema.ToolInfo{
			info(stage.ToolConfirmExpense,
				"Called when the user confirms the expense.",
				map[string]*schema.ParameterInfo{
					"expense": {Type: schema.Number, Desc: "The expense of the order", Required: true},
				}),
			info(stage.ToolUpdateCreditCard,
				"Called when the user provides their credit card number, expiry date, and CVV. Confirm the spelling with the user before calling.",
				map[string]*schema.ParameterInfo{
					"number": {Type: schema.String, Desc: "The credit card number", Required: true},
					"expiry": {Type: schema.String, Desc: "The expiry date of the credit card", Required: true},
					"cvv":    {Type: schema.String, Desc: "The CVV of the credit card", Required: true},
				}),
			info(stage.ToolConfirmCheckout,
				"Called when the user confirms the checkout.",
				nil),
			info(stage.ToolToTakeaway,
				"Called when the user wants to update their order.",
				nil),
			updateNameInfo(),
			updatePhoneInfo(),
			toGreeterInfo(),
		}
	default:
		return nil
	}
}

func info(name, desc string, params map[string]*schema.ParameterInfo) *schema.ToolInfo {
	ti := &schema.ToolInfo{Name: name, Desc: desc}
	if len(params) > 0 {
		ti.ParamsOneOf = schema.NewParamsOneOfByParams(params)
	}
	return ti
}

func updateNameInfo() *schema.ToolInfo {
	return info(stage.ToolUpdateName,
		"Called when the user provides their name. Confirm the spelling with the user before calling.",
		map[string]*schema.ParameterInfo{
			"name": {Type: schema.String, Desc: "The customer's name", Required: true},
		})
}

func updatePhoneInfo() *schema.ToolInfo {
	return info(stage.ToolUpdatePhone,
		"Called when the user provides their phone number. Confirm the spelling with the user before calling.",
		map[string]*schema.ParameterInfo{
			"phone": {Type: schema.String, Desc: "The customer's phone number", Required: true},
		})
}

func toGreeterInfo() *schema.ToolInfo {
	return info(stage.ToolToGreeter,
		"Called when user asks any unrelated questions or requests any other services not in this agent's job description.",
		nil)
}
