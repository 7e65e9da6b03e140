// controller/controllers.go
package controller

import "github.com/MichaelGetu-git/Security-Project/service"

type Controllers struct {
	Document      *DocumentController
	AccessRequest *AccessRequestController
	Policy        *PolicyController
	User          *UserController
	Audit         *AuditController
}

func InitializeControllers(services *service.Services) *Controllers {
	return &Controllers{
		Document:      NewDocumentController(services.Document),
		AccessRequest: NewAccessRequestController(services.AccessRequest),
		Policy:        NewPolicyController(services.Policy),
		User:          NewUserController(services.User),
		Audit:         NewAuditController(services.Audit),
	}
}
