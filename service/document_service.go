// service/document_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MichaelGetu-git/Security-Project/audit"
	"github.com/MichaelGetu-git/Security-Project/dao"
	sec_errors "github.com/MichaelGetu-git/Security-Project/errors"
	logger "github.com/MichaelGetu-git/Security-Project/logging"
	"github.com/MichaelGetu-git/Security-Project/model"
	"github.com/MichaelGetu-git/Security-Project/pdp/engine"
	pdp_model "github.com/MichaelGetu-git/Security-Project/pdp/model"
	"github.com/MichaelGetu-git/Security-Project/util"
)

// AccessDeniedError carries the decision behind a refused read.
type AccessDeniedError struct {
	Decision *pdp_model.AccessDecision
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied: %s", strings.Join(e.Decision.Reasons, "; "))
}

func (e *AccessDeniedError) Unwrap() error {
	return sec_errors.ErrAccessDenied
}

// IDocumentService covers document listing, creation and delegation.
type IDocumentService interface {
	ListDocuments(ctx context.Context, subject model.User) (*model.DocumentListing, error)
	CreateDocument(ctx context.Context, subject model.User, input model.DocumentInput) (*model.Document, error)
	GetDocument(ctx context.Context, subject model.User, documentID int64) (*model.Document, error)
	GetDecision(ctx context.Context, subject model.User, documentID int64) (*pdp_model.AccessDecision, error)
	ShareDocument(ctx context.Context, subject model.User, documentID int64, input model.ShareInput) (*model.PermissionGrant, error)
	RevokeDocument(ctx context.Context, subject model.User, documentID, userID int64, permission string) error
	ListShares(ctx context.Context, subject model.User, documentID int64) ([]model.PermissionGrant, error)
}

type DocumentService struct {
	documentDAO      dao.IDocumentDAO
	accessRequestDAO dao.IAccessRequestDAO
	userDAO          dao.IUserDAO
	access           IAccessService
	auditService     audit.Service
	validationUtil   *util.ValidationUtil
	eventBus         *util.EventBus
}

var _ IDocumentService = &DocumentService{}

func NewDocumentService(documentDAO dao.IDocumentDAO, accessRequestDAO dao.IAccessRequestDAO, userDAO dao.IUserDAO, access IAccessService, auditService audit.Service, validationUtil *util.ValidationUtil, eventBus *util.EventBus) *DocumentService {
	return &DocumentService{
		documentDAO:      documentDAO,
		accessRequestDAO: accessRequestDAO,
		userDAO:          userDAO,
		access:           access,
		auditService:     auditService,
		validationUtil:   validationUtil,
		eventBus:         eventBus,
	}
}

// ListDocuments splits every document into readable and denied for subject,
// attaching the subject's latest access request to each.
func (s *DocumentService) ListDocuments(ctx context.Context, subject model.User) (*model.DocumentListing, error) {
	start := time.Now()

	docs, err := s.documentDAO.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	decisions, err := s.access.DecideDocuments(ctx, subject, docs)
	if err != nil {
		return nil, err
	}
	latest, err := s.accessRequestDAO.LatestAccessRequestsByUser(ctx, subject.ID)
	if err != nil {
		return nil, err
	}

	listing := &model.DocumentListing{
		Documents: []model.AllowedDocument{},
		Denied:    []model.DeniedDocument{},
	}
	for i, doc := range docs {
		decision := decisions[i]
		request := latest[doc.ID]
		if decision.Allowed {
			listing.Documents = append(listing.Documents, model.AllowedDocument{Document: doc, AccessRequest: request})
			continue
		}
		listing.Denied = append(listing.Denied, model.DeniedDocument{
			ID:               doc.ID,
			Name:             doc.Name,
			Reasons:          decision.Reasons,
			Severity:         string(decision.Severity),
			AccessRequest:    request,
			CanRequestAccess: request.AllowsResubmission(),
		})
	}

	s.auditListing(ctx, subject, listing)

	logger.Info("Documents listed",
		zap.Int64("userID", subject.ID),
		zap.Int("allowed", len(listing.Documents)),
		zap.Int("denied", len(listing.Denied)),
		zap.Duration("duration", time.Since(start)))
	return listing, nil
}

func (s *DocumentService) auditListing(ctx context.Context, subject model.User, listing *model.DocumentListing) {
	severity := string(pdp_model.SeverityInfo)
	deniedIDs := make([]int64, 0, len(listing.Denied))
	for _, d := range listing.Denied {
		deniedIDs = append(deniedIDs, d.ID)
	}
	if len(deniedIDs) > 0 {
		severity = string(pdp_model.SeverityWarn)
	}
	recordAudit(ctx, s.auditService, audit.AuditLog{
		UserID:   subject.ID,
		Username: subject.Username,
		Action:   audit.ActionDocumentList,
		Resource: "documents",
		Severity: severity,
		Details: audit.Details(map[string]interface{}{
			"allowed_count": len(listing.Documents),
			"denied_ids":    deniedIDs,
		}),
	})

	for _, doc := range listing.Documents {
		docSeverity := string(pdp_model.SeverityInfo)
		if doc.Classification == model.SecurityLevelConfidential {
			docSeverity = string(pdp_model.SeverityWarn)
		}
		recordAudit(ctx, s.auditService, audit.AuditLog{
			UserID:   subject.ID,
			Username: subject.Username,
			Action:   audit.ActionDocumentAccess,
			Resource: documentResource(doc.ID),
			Severity: docSeverity,
			Details:  audit.Details(map[string]interface{}{"classification": doc.Classification}),
		})
	}
}

// CreateDocument stores a document owned by subject. An omitted classification
// is PUBLIC; it may not exceed the creator's clearance.
func (s *DocumentService) CreateDocument(ctx context.Context, subject model.User, input model.DocumentInput) (*model.Document, error) {
	if !engine.HasPermission(subject.Roles, engine.PermissionDocumentsCreate) {
		return nil, sec_errors.ErrForbidden
	}
	if strings.TrimSpace(string(input.Classification)) == "" {
		input.Classification = model.SecurityLevelPublic
	} else if level, ok := model.ParseSecurityLevel(string(input.Classification)); ok {
		input.Classification = level
	}
	if err := s.validationUtil.ValidateDocumentInput(input); err != nil {
		return nil, err
	}
	if !engine.SatisfiesClearance(subject.SecurityLevel, input.Classification) {
		return nil, sec_errors.ErrClassificationAboveClearance
	}

	doc := model.Document{
		Name:           strings.TrimSpace(input.Name),
		OwnerID:        subject.ID,
		Classification: input.Classification,
		Department:     engine.EncodeDepartments(input.Visibility != model.VisibilitySpecific, input.Departments),
		Location:       input.Location,
	}

	created, err := s.documentDAO.CreateDocument(ctx, doc)
	if err != nil {
		logger.Error("Error creating document", zap.Error(err), zap.Int64("userID", subject.ID))
		return nil, err
	}

	recordAudit(ctx, s.auditService, audit.AuditLog{
		UserID:   subject.ID,
		Username: subject.Username,
		Action:   audit.ActionDocumentCreate,
		Resource: documentResource(created.ID),
		Details: audit.Details(map[string]interface{}{
			"classification": created.Classification,
			"department":     created.Department,
		}),
	})

	logger.Info("Document created", zap.Int64("documentID", created.ID), zap.Int64("userID", subject.ID))
	return created, nil
}

// GetDocument returns the document when subject may read it, and an
// *AccessDeniedError otherwise.
func (s *DocumentService) GetDocument(ctx context.Context, subject model.User, documentID int64) (*model.Document, error) {
	decision, doc, err := s.access.Decide(ctx, subject, documentID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &AccessDeniedError{Decision: decision}
	}
	return doc, nil
}

// GetDecision returns the verdict without enforcing it.
func (s *DocumentService) GetDecision(ctx context.Context, subject model.User, documentID int64) (*pdp_model.AccessDecision, error) {
	decision, _, err := s.access.Decide(ctx, subject, documentID)
	return decision, err
}

// ownedDocument loads the document and checks subject may delegate on it:
// documents:share is required, and only the owner or an Admin delegates.
func (s *DocumentService) ownedDocument(ctx context.Context, subject model.User, documentID int64) (*model.Document, error) {
	if !engine.HasPermission(subject.Roles, engine.PermissionDocumentsShare) {
		return nil, sec_errors.ErrForbidden
	}
	doc, err := s.documentDAO.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.OwnerID != subject.ID && !engine.IsAdmin(subject.Roles) {
		return nil, sec_errors.ErrNotOwnerOrAdmin
	}
	return doc, nil
}

func (s *DocumentService) ShareDocument(ctx context.Context, subject model.User, documentID int64, input model.ShareInput) (*model.PermissionGrant, error) {
	if err := s.validationUtil.ValidateShare(input); err != nil {
		return nil, err
	}
	if input.Permission == "" {
		input.Permission = model.PermissionRead
	}

	doc, err := s.ownedDocument(ctx, subject, documentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userDAO.GetUser(ctx, input.UserID); err != nil {
		return nil, err
	}

	grant, err := s.documentDAO.GrantPermission(ctx, model.PermissionGrant{
		DocumentID:     doc.ID,
		UserID:         input.UserID,
		PermissionType: input.Permission,
		GrantedBy:      subject.ID,
	})
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.auditService, audit.AuditLog{
		UserID:   subject.ID,
		Username: subject.Username,
		Action:   audit.ActionPermissionGranted,
		Resource: documentResource(doc.ID),
		Severity: string(shareSeverity(input.Permission, doc.Classification)),
		Details: audit.Details(map[string]interface{}{
			"target_user_id": input.UserID,
			"permission":     input.Permission,
		}),
	})
	s.eventBus.Publish(ctx, util.EventDocumentShared, SharePayload{Grant: *grant, Document: *doc})

	return grant, nil
}

// SharePayload is published on util.EventDocumentShared.
type SharePayload struct {
	Grant    model.PermissionGrant
	Document model.Document
}

func shareSeverity(permission string, classification model.SecurityLevel) pdp_model.Severity {
	switch {
	case permission == model.PermissionAll:
		return pdp_model.SeverityCritical
	case classification == model.SecurityLevelConfidential:
		return pdp_model.SeverityWarn
	default:
		return pdp_model.SeverityInfo
	}
}

// RevokeDocument removes userID's grants, or just one permission type.
func (s *DocumentService) RevokeDocument(ctx context.Context, subject model.User, documentID, userID int64, permission string) error {
	doc, err := s.ownedDocument(ctx, subject, documentID)
	if err != nil {
		return err
	}

	removed, err := s.documentDAO.RevokePermission(ctx, doc.ID, userID, permission)
	if err != nil {
		return err
	}
	if removed == 0 {
		return sec_errors.ErrPermissionNotFound
	}

	recordAudit(ctx, s.auditService, audit.AuditLog{
		UserID:   subject.ID,
		Username: subject.Username,
		Action:   audit.ActionPermissionRevoked,
		Resource: documentResource(doc.ID),
		Severity: string(pdp_model.SeverityWarn),
		Details: audit.Details(map[string]interface{}{
			"target_user_id": userID,
			"permission":     permission,
			"removed":        removed,
		}),
	})
	return nil
}

func (s *DocumentService) ListShares(ctx context.Context, subject model.User, documentID int64) ([]model.PermissionGrant, error) {
	doc, err := s.ownedDocument(ctx, subject, documentID)
	if err != nil {
		return nil, err
	}
	return s.documentDAO.ListDocumentPermissions(ctx, doc.ID)
}
