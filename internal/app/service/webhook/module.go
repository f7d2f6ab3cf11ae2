package webhook

import "go.uber.org/fx"

// Module exposes the webhook handler via Fx.
var Module = fx.Options(
	fx.Provide(NewHandler),
)
