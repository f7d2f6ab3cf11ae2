package types

// SubscriptionPlan describes a sellable subscription configured per
// deployment. Plans are matched by the plan_id carried in checkout metadata.
type SubscriptionPlan struct {
	ID       string `json:"id" mapstructure:"id"`
	Name     string `json:"name" mapstructure:"name"`
	Interval string `json:"interval" mapstructure:"interval"`
}
