package checkoutService

import (
	"VyapaarAI/internal/api/checkout"
	checkoutRepository "VyapaarAI/internal/api/checkout/repository"
	"VyapaarAI/internal/entity"
	"VyapaarAI/pkg/catalog"
	"VyapaarAI/pkg/detector"
	"VyapaarAI/pkg/redis"
	"VyapaarAI/pkg/s3"
	"VyapaarAI/pkg/storage"
	"VyapaarAI/pkg/utils"
	"VyapaarAI/pkg/workerpool"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const DefaultBillTTL = 24 * time.Hour

type ICheckoutService interface {
	Detect(ctx context.Context, upload checkout.UploadedImage) (checkout.DetectResult, error)
	ProcessFrame(ctx context.Context, frame []byte) (checkout.StreamResponse, error)
	Checkout(ctx context.Context, bill entity.Bill) (string, error)
	GetBill(ctx context.Context, id string) (entity.Bill, error)
	Wait()
}

type checkoutService struct {
	log        *logrus.Logger
	catalog    *catalog.Catalog
	storage    storage.IStorage
	utils      utils.IUtils
	detector   detector.IDetector
	pool       *workerpool.Pool
	repository checkoutRepository.Repository
	redis      redis.IRedis
	s3         s3.ItfS3
	billTTL    time.Duration

	pending sync.WaitGroup
}

// NewCheckoutService wires the detection pipeline. cache and archive may be nil.
func NewCheckoutService(
	log *logrus.Logger,
	cat *catalog.Catalog,
	store storage.IStorage,
	utils utils.IUtils,
	det detector.IDetector,
	pool *workerpool.Pool,
	repo checkoutRepository.Repository,
	cache redis.IRedis,
	archive s3.ItfS3,
	billTTL time.Duration,
) ICheckoutService {
	if billTTL <= 0 {
		billTTL = DefaultBillTTL
	}

	return &checkoutService{
		log:        log,
		catalog:    cat,
		storage:    store,
		utils:      utils,
		detector:   det,
		pool:       pool,
		repository: repo,
		redis:      cache,
		s3:         archive,
		billTTL:    billTTL,
	}
}

// Wait blocks until every background sale recording has finished.
func (s *checkoutService) Wait() {
	s.pending.Wait()
}
