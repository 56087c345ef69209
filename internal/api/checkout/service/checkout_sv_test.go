package checkoutService

import (
	"VyapaarAI/internal/api/checkout"
	checkoutRepository "VyapaarAI/internal/api/checkout/repository"
	"VyapaarAI/internal/entity"
	"VyapaarAI/pkg/catalog"
	contextPkg "VyapaarAI/pkg/context"
	"VyapaarAI/pkg/redis"
	"VyapaarAI/pkg/response"
	"VyapaarAI/pkg/storage"
	"VyapaarAI/pkg/utils"
	"VyapaarAI/pkg/workerpool"
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type fakeDetector struct {
	detections []entity.Detection
	err        error
	calls      int
}

func (f *fakeDetector) Detect(ctx context.Context, img image.Image) ([]entity.Detection, error) {
	f.calls++
	return f.detections, f.err
}

func (f *fakeDetector) Annotate(img image.Image, detections []entity.Detection) (image.Image, error) {
	return img, nil
}

func (f *fakeDetector) Name() string { return "fake" }
func (f *fakeDetector) Close() error { return nil }

type fakeCache struct {
	mu    sync.Mutex
	bills map[string]entity.Bill
}

func newFakeCache() *fakeCache {
	return &fakeCache{bills: map[string]entity.Bill{}}
}

func (f *fakeCache) SetBill(ctx context.Context, id string, bill entity.Bill, expiration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bills[id] = bill
	return nil
}

func (f *fakeCache) GetBill(ctx context.Context, id string) (entity.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bill, ok := f.bills[id]
	if !ok {
		return entity.Bill{}, redis.ErrBillNotFound
	}
	return bill, nil
}

func (f *fakeCache) Close() error { return nil }

type fixture struct {
	svc      ICheckoutService
	root     string
	detector *fakeDetector
	cache    *fakeCache
}

func newFixture(t *testing.T, withCache bool) fixture {
	t.Helper()
	return newFixtureWithUtils(t, withCache, utils.New())
}

func newFixtureWithUtils(t *testing.T, withCache bool, u utils.IUtils) fixture {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	root := t.TempDir()
	det := &fakeDetector{}

	var cache redis.IRedis
	fc := newFakeCache()
	if withCache {
		cache = fc
	}

	svc := NewCheckoutService(
		logger,
		catalog.Default(),
		storage.New(root, u, logger),
		u,
		det,
		workerpool.New(2),
		checkoutRepository.New(nil, logger),
		cache,
		nil,
		time.Hour,
	)

	return fixture{svc: svc, root: root, detector: det, cache: fc}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 32, 24))))
	return buf.Bytes()
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0
	}
	require.NoError(t, err)
	return len(entries)
}

func testCtx() context.Context {
	return contextPkg.WithRequestID(context.Background(), "test-request")
}

func TestDetect_RejectsNonImage(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.svc.Detect(testCtx(), checkout.UploadedImage{
		Filename:    "notes.txt",
		ContentType: "text/plain",
		Body:        strings.NewReader("hello"),
	})

	require.ErrorIs(t, err, checkout.ErrNotAnImage)
	require.Zero(t, countFiles(t, filepath.Join(f.root, storage.UploadDir)))
	require.Zero(t, f.detector.calls)
}

func TestDetect_RejectsOversizedUpload(t *testing.T) {
	f := newFixtureWithUtils(t, false, utils.NewWithMaxFileSize(16))
	body := pngBytes(t)

	_, err := f.svc.Detect(testCtx(), checkout.UploadedImage{
		Filename:    "shelf.png",
		ContentType: "image/png",
		Size:        int64(len(body)),
		Body:        bytes.NewReader(body),
	})

	require.ErrorIs(t, err, utils.ErrFileTooLarge)
	var respErr *response.Error
	require.ErrorAs(t, err, &respErr)
	require.Equal(t, http.StatusRequestEntityTooLarge, respErr.Code)
	require.Zero(t, countFiles(t, filepath.Join(f.root, storage.UploadDir)))
	require.Zero(t, f.detector.calls)
}

func TestDetect_PNGDeclaredAsHEIC(t *testing.T) {
	f := newFixture(t, false)
	f.detector.detections = []entity.Detection{{Label: "Dermi Cool", Confidence: 0.9, Box: entity.BoundingBox{X1: 1, Y1: 1, X2: 10, Y2: 10}}}

	result, err := f.svc.Detect(testCtx(), checkout.UploadedImage{
		Filename:    "shelf.heic",
		ContentType: "image/heic",
		Body:        bytes.NewReader(pngBytes(t)),
	})

	require.NoError(t, err)
	require.Len(t, result.Bill.Items, 1)
	require.NotNil(t, result.OutputImage)
	require.True(t, strings.HasSuffix(*result.OutputImage, ".jpg"))
	f.svc.Wait()
}

func TestDetect_UndecodableImage(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.svc.Detect(testCtx(), checkout.UploadedImage{
		Filename:    "broken.png",
		ContentType: "image/png",
		Body:        strings.NewReader("definitely not a png"),
	})

	require.ErrorIs(t, err, checkout.ErrInvalidImage)
	require.Zero(t, f.detector.calls)
}

func TestDetect_NoProducts(t *testing.T) {
	f := newFixture(t, false)

	result, err := f.svc.Detect(testCtx(), checkout.UploadedImage{
		Filename:    "shelf.png",
		ContentType: "image/png",
		Body:        bytes.NewReader(pngBytes(t)),
	})

	require.NoError(t, err)
	require.Equal(t, checkout.NoProductsMessage, result.Message)
	require.Nil(t, result.OutputImage)
	require.Empty(t, result.BillID)
	require.Equal(t, entity.EmptyBill(), result.Bill)
	require.Equal(t, 1, countFiles(t, filepath.Join(f.root, storage.UploadDir)))
	require.Zero(t, countFiles(t, filepath.Join(f.root, storage.ProcessedDir)))
}

func TestDetect_Success(t *testing.T) {
	f := newFixture(t, true)
	f.detector.detections = []entity.Detection{
		{Label: "Dermi Cool", Confidence: 0.9, Box: entity.BoundingBox{X1: 1, Y1: 1, X2: 10, Y2: 10}},
		{Label: "Dermi Cool", Confidence: 0.8, Box: entity.BoundingBox{X1: 12, Y1: 2, X2: 20, Y2: 20}},
	}

	result, err := f.svc.Detect(testCtx(), checkout.UploadedImage{
		Filename:    "counter.png",
		ContentType: "image/png",
		Body:        bytes.NewReader(pngBytes(t)),
	})
	require.NoError(t, err)
	f.svc.Wait()

	require.Equal(t, 110.0, result.Bill.Total)
	require.Equal(t, 2, result.Detections)
	require.NotNil(t, result.OutputImage)
	require.Equal(t, result.Images.Annotated, *result.OutputImage)

	name := filepath.Base(result.Images.Original)
	require.Equal(t, "processed_images/processed_"+name, *result.OutputImage)

	require.Equal(t, 1, countFiles(t, filepath.Join(f.root, storage.UploadDir)))
	require.Equal(t, 1, countFiles(t, filepath.Join(f.root, storage.ProcessedDir)))
	_, err = os.Stat(filepath.Join(f.root, filepath.FromSlash(*result.OutputImage)))
	require.NoError(t, err)

	cached, err := f.svc.GetBill(testCtx(), result.BillID)
	require.NoError(t, err)
	require.Equal(t, result.Bill, cached)
}

func TestDetect_InferenceFailure(t *testing.T) {
	f := newFixture(t, false)
	f.detector.err = errors.New("model exploded")

	_, err := f.svc.Detect(testCtx(), checkout.UploadedImage{
		Filename:    "x.png",
		ContentType: "image/png",
		Body:        bytes.NewReader(pngBytes(t)),
	})

	require.ErrorContains(t, err, "model exploded")
	require.ErrorIs(t, err, f.detector.err)
}

func TestGetBill(t *testing.T) {
	disabled := newFixture(t, false)
	_, err := disabled.svc.GetBill(testCtx(), "01ABC")
	require.ErrorIs(t, err, checkout.ErrBillCacheDisabled)

	enabled := newFixture(t, true)
	_, err = enabled.svc.GetBill(testCtx(), "missing")
	require.ErrorIs(t, err, checkout.ErrBillNotFound)
}

func TestProcessFrameAndCheckout(t *testing.T) {
	f := newFixture(t, true)
	f.detector.detections = []entity.Detection{{Label: "Lux Purple Soap", Confidence: 0.7}}

	resp, err := f.svc.ProcessFrame(testCtx(), pngBytes(t))
	require.NoError(t, err)
	require.Equal(t, 1, resp.Detections)
	require.Equal(t, 45.0, resp.Bill.Total)

	_, err = f.svc.ProcessFrame(testCtx(), []byte("garbage"))
	require.ErrorIs(t, err, checkout.ErrInvalidImage)

	id, err := f.svc.Checkout(testCtx(), resp.Bill)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	f.svc.Wait()

	cached, err := f.svc.GetBill(testCtx(), id)
	require.NoError(t, err)
	require.Equal(t, resp.Bill, cached)

	_, err = f.svc.Checkout(testCtx(), entity.EmptyBill())
	require.ErrorIs(t, err, checkout.ErrEmptyBill)
}
