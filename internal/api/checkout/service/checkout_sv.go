package checkoutService

import (
	"VyapaarAI/internal/api/checkout"
	"VyapaarAI/internal/entity"
	contextPkg "VyapaarAI/pkg/context"
	"VyapaarAI/pkg/response"
	"VyapaarAI/pkg/storage"
	"VyapaarAI/pkg/utils"
	"errors"
	"fmt"
	"image"
	"mime"
	"net/http"
	"path"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const recordTimeout = 30 * time.Second

func (s *checkoutService) Detect(ctx context.Context, upload checkout.UploadedImage) (checkout.DetectResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.utils.ValidateImage(upload.ContentType, upload.Size); err != nil {
		return checkout.DetectResult{}, uploadError(err)
	}

	if err := s.storage.EnsureDirs(); err != nil {
		return checkout.DetectResult{}, fmt.Errorf("prepare image directories: %w", err)
	}

	name := s.storage.NewUploadName(upload.Filename)
	if _, err := s.storage.SaveUpload(name, upload.Body); err != nil {
		return checkout.DetectResult{}, err
	}
	images := entity.StoredImagePair{Original: path.Join(storage.UploadDir, name)}

	img, err := s.decodeUpload(name, upload.ContentType)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"file":       name,
			"error":      err.Error(),
		}).Warn("Uploaded image could not be decoded")
		return checkout.DetectResult{}, checkout.ErrInvalidImage
	}

	detections, err := s.detect(ctx, img)
	if err != nil {
		return checkout.DetectResult{}, fmt.Errorf("detect products: %w", err)
	}

	if len(detections) == 0 {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"file":       name,
		}).Info("No products detected")
		return checkout.DetectResult{
			Bill:    entity.EmptyBill(),
			Images:  images,
			Message: checkout.NoProductsMessage,
		}, nil
	}

	bill := AssembleBill(s.catalog, detections)

	annotated, err := s.detector.Annotate(img, detections)
	if err != nil {
		return checkout.DetectResult{}, fmt.Errorf("annotate image: %w", err)
	}

	outputImage, err := s.storage.SaveAnnotated(name, annotated)
	if err != nil {
		return checkout.DetectResult{}, err
	}
	images.Annotated = outputImage

	billID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return checkout.DetectResult{}, fmt.Errorf("generate bill id: %w", err)
	}

	sale := entity.SaleRecord{
		ID:          billID,
		Source:      entity.SaleSourceUpload,
		Bill:        bill,
		OutputImage: outputImage,
		CreatedAt:   time.Now(),
	}
	s.cacheBill(ctx, sale.ID, sale.Bill)
	s.recordAsync(requestID, sale)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"bill_id":    billID,
		"detections": len(detections),
		"lines":      len(bill.Items),
		"total":      bill.Total,
		"backend":    s.detector.Name(),
	}).Info("Bill assembled")

	return checkout.DetectResult{
		BillID:      billID,
		Bill:        bill,
		Images:      images,
		Detections:  len(detections),
		OutputImage: &outputImage,
	}, nil
}

func uploadError(err error) error {
	if errors.Is(err, utils.ErrFileTooLarge) {
		return response.Wrap(http.StatusRequestEntityTooLarge, err)
	}
	return checkout.ErrNotAnImage
}

func (s *checkoutService) decodeUpload(name string, contentType string) (image.Image, error) {
	f, err := s.storage.OpenUpload(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return s.utils.DecodeImage(f, contentType)
}

// detect runs inference on the bounded pool so slow models cannot starve
// the server of goroutines.
func (s *checkoutService) detect(ctx context.Context, img image.Image) ([]entity.Detection, error) {
	var detections []entity.Detection
	err := s.pool.Do(ctx, func() error {
		var err error
		detections, err = s.detector.Detect(ctx, img)
		return err
	})
	if err != nil {
		return nil, err
	}
	return detections, nil
}

func (s *checkoutService) cacheBill(ctx context.Context, id string, bill entity.Bill) {
	if s.redis == nil {
		return
	}

	if err := s.redis.SetBill(ctx, id, bill, s.billTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"bill_id":    id,
			"error":      err.Error(),
		}).Warn("Failed to cache bill")
	}
}

// recordAsync persists the sale and archives its image after the response
// has been produced. Failures are logged only.
func (s *checkoutService) recordAsync(requestID string, sale entity.SaleRecord) {
	if !s.repository.Enabled() && s.s3 == nil {
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), recordTimeout)
		defer cancel()

		log := s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"sale_id":    sale.ID,
		})

		recorded := false
		if s.repository.Enabled() {
			if err := s.saveSale(ctx, sale); err != nil {
				log.WithError(err).Error("Failed to record sale")
			} else {
				recorded = true
			}
		}

		if s.s3 == nil || sale.OutputImage == "" {
			return
		}

		archiveURL, err := s.archive(ctx, sale.OutputImage)
		if err != nil {
			log.WithError(err).Warn("Failed to archive annotated image")
			return
		}

		if recorded {
			client, err := s.repository.NewClient(false)
			if err == nil {
				err = client.Sale.UpdateArchiveURL(ctx, sale.ID, archiveURL)
			}
			if err != nil {
				log.WithError(err).Warn("Failed to store archive url")
			}
		}
	}()
}

func (s *checkoutService) saveSale(ctx context.Context, sale entity.SaleRecord) error {
	client, err := s.repository.NewClient(true)
	if err != nil {
		return err
	}

	if err := client.Sale.CreateSale(ctx, sale); err != nil {
		if rbErr := client.Rollback(); rbErr != nil {
			s.log.WithError(rbErr).Warn("Rollback failed")
		}
		return err
	}

	return client.Commit()
}

func (s *checkoutService) archive(ctx context.Context, outputImage string) (string, error) {
	f, err := s.storage.OpenAnnotated(outputImage)
	if err != nil {
		return "", err
	}
	defer f.Close()

	contentType := mime.TypeByExtension(path.Ext(outputImage))
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return s.s3.UploadFile(ctx, path.Base(outputImage), contentType, f)
}
