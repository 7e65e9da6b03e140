// service/access_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MichaelGetu-git/Security-Project/audit"
	"github.com/MichaelGetu-git/Security-Project/dao"
	logger "github.com/MichaelGetu-git/Security-Project/logging"
	"github.com/MichaelGetu-git/Security-Project/model"
	pdp_model "github.com/MichaelGetu-git/Security-Project/pdp/model"
)

const defaultMaxParallel = 8

// IAccessService decides whether a subject may read documents.
type IAccessService interface {
	Decide(ctx context.Context, subject model.User, documentID int64) (*pdp_model.AccessDecision, *model.Document, error)
	DecideDocument(ctx context.Context, subject model.User, doc model.Document) (*pdp_model.AccessDecision, error)
	DecideDocuments(ctx context.Context, subject model.User, docs []model.Document) ([]*pdp_model.AccessDecision, error)
}

// DecisionInputLoader assembles engine input from the stores.
type DecisionInputLoader interface {
	LoadPolicySnapshot(ctx context.Context) ([]model.Policy, error)
	LoadDecisionRequest(ctx context.Context, user model.User, doc model.Document) (*pdp_model.DecisionRequest, error)
	LoadDecisionRequestWithSnapshot(ctx context.Context, user model.User, doc model.Document, policies []model.Policy) (*pdp_model.DecisionRequest, error)
}

// Decider is the pure decision function.
type Decider interface {
	Decide(req *pdp_model.DecisionRequest) *pdp_model.AccessDecision
}

type AccessService struct {
	documentDAO  dao.IDocumentDAO
	inputs       DecisionInputLoader
	engine       Decider
	auditService audit.Service
	maxParallel  int
}

var _ IAccessService = &AccessService{}

func NewAccessService(documentDAO dao.IDocumentDAO, inputs DecisionInputLoader, engine Decider, auditService audit.Service, maxParallel int) *AccessService {
	if maxParallel <= 0 {
		maxParallel = defaultMaxParallel
	}
	return &AccessService{
		documentDAO:  documentDAO,
		inputs:       inputs,
		engine:       engine,
		auditService: auditService,
		maxParallel:  maxParallel,
	}
}

// Decide loads the document and decides, auditing the verdict.
func (s *AccessService) Decide(ctx context.Context, subject model.User, documentID int64) (*pdp_model.AccessDecision, *model.Document, error) {
	doc, err := s.documentDAO.GetDocument(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}
	decision, err := s.DecideDocument(ctx, subject, *doc)
	if err != nil {
		return nil, nil, err
	}
	return decision, doc, nil
}

// DecideDocument decides on an already loaded document, auditing the verdict.
func (s *AccessService) DecideDocument(ctx context.Context, subject model.User, doc model.Document) (*pdp_model.AccessDecision, error) {
	start := time.Now()

	req, err := s.inputs.LoadDecisionRequest(ctx, subject, doc)
	if err != nil {
		logger.Error("Failed to load decision input",
			zap.Error(err),
			zap.Int64("userID", subject.ID),
			zap.Int64("documentID", doc.ID))
		return nil, err
	}

	decision := s.engine.Decide(req)
	s.auditDecision(ctx, req.User, doc, decision)

	logger.Info("Access decided",
		zap.Int64("userID", subject.ID),
		zap.Int64("documentID", doc.ID),
		zap.Bool("allowed", decision.Allowed),
		zap.Strings("reasons", decision.Reasons),
		zap.Duration("duration", time.Since(start)))
	return decision, nil
}

// DecideDocuments decides on every document against one policy snapshot.
// Results are in the order of docs. Individual verdicts are not audited.
func (s *AccessService) DecideDocuments(ctx context.Context, subject model.User, docs []model.Document) ([]*pdp_model.AccessDecision, error) {
	start := time.Now()

	policies, err := s.inputs.LoadPolicySnapshot(ctx)
	if err != nil {
		return nil, err
	}

	decisions := make([]*pdp_model.AccessDecision, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxParallel)

	for i := range docs {
		i := i
		g.Go(func() error {
			req, err := s.inputs.LoadDecisionRequestWithSnapshot(gctx, subject, docs[i], policies)
			if err != nil {
				return fmt.Errorf("document %d: %w", docs[i].ID, err)
			}
			decisions[i] = s.engine.Decide(req)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Failed to decide documents", zap.Error(err), zap.Int64("userID", subject.ID))
		return nil, err
	}

	logger.Debug("Documents decided",
		zap.Int64("userID", subject.ID),
		zap.Int("count", len(docs)),
		zap.Duration("duration", time.Since(start)))
	return decisions, nil
}

func (s *AccessService) auditDecision(ctx context.Context, user model.User, doc model.Document, decision *pdp_model.AccessDecision) {
	status := audit.StatusSuccess
	if !decision.Allowed {
		status = audit.StatusFailure
	}
	recordAudit(ctx, s.auditService, audit.AuditLog{
		UserID:   user.ID,
		Username: user.Username,
		Action:   audit.ActionAccessDecision,
		Resource: documentResource(doc.ID),
		Status:   status,
		Severity: string(decision.Severity),
		Reasons:  decision.Reasons,
		Details: audit.Details(map[string]interface{}{
			"roles":            user.RoleNames(),
			"department":       user.Department,
			"security_level":   user.SecurityLevel,
			"classification":   doc.Classification,
			"denied_by_policy": decision.DeniedByPolicy,
		}),
	})
}
