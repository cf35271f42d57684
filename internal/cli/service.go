package cli

import "oidn-release/internal/app"

func newAppService() app.Service {
	return app.NewService()
}
