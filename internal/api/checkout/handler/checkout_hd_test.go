package checkoutHandler

import (
	checkoutRepository "VyapaarAI/internal/api/checkout/repository"
	checkoutService "VyapaarAI/internal/api/checkout/service"
	"VyapaarAI/internal/entity"
	"VyapaarAI/internal/middleware"
	"VyapaarAI/pkg/catalog"
	"VyapaarAI/pkg/storage"
	"VyapaarAI/pkg/utils"
	"VyapaarAI/pkg/workerpool"
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type stubDetector struct {
	detections []entity.Detection
	err        error
}

func (s *stubDetector) Detect(ctx context.Context, img image.Image) ([]entity.Detection, error) {
	return s.detections, s.err
}

func (s *stubDetector) Annotate(img image.Image, detections []entity.Detection) (image.Image, error) {
	return img, nil
}

func (s *stubDetector) Name() string { return "stub" }
func (s *stubDetector) Close() error { return nil }

func newTestApp(t *testing.T, detections []entity.Detection) (*fiber.App, string) {
	t.Helper()
	return newTestAppWithDetector(t, &stubDetector{detections: detections})
}

func newTestAppWithDetector(t *testing.T, det *stubDetector) (*fiber.App, string) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	root := t.TempDir()
	u := utils.New()
	svc := checkoutService.NewCheckoutService(
		logger,
		catalog.Default(),
		storage.New(root, u, logger),
		u,
		det,
		workerpool.New(1),
		checkoutRepository.New(nil, logger),
		nil,
		nil,
		time.Hour,
	)

	mw := middleware.New(logger)
	h := New(logger, mw, svc, 5*time.Second)

	app := fiber.New()
	app.Use(mw.NewRequestIDMiddleware())
	h.StartPublic(app)
	h.Start(app.Group("/api/v1"))
	return app, root
}

func multipartRequest(t *testing.T, filename, contentType string, body []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/detect", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 30))))
	return buf.Bytes()
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, jsoniter.NewDecoder(resp.Body).Decode(&out))
	return out
}

func storedFiles(t *testing.T, root string) int {
	t.Helper()
	n := 0
	for _, dir := range []string{storage.UploadDir, storage.ProcessedDir} {
		entries, err := os.ReadDir(filepath.Join(root, dir))
		if os.IsNotExist(err) {
			continue
		}
		require.NoError(t, err)
		n += len(entries)
	}
	return n
}

func TestDetect_NonImageIs422(t *testing.T) {
	app, root := newTestApp(t, nil)

	resp, err := app.Test(multipartRequest(t, "notes.txt", "text/plain", []byte("hello")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, "File upload must be an image", decodeBody(t, resp)["detail"])
	require.Zero(t, storedFiles(t, root))
}

func TestDetect_MissingFileIs422(t *testing.T) {
	app, _ := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/detect", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestDetect_UndecodableIs400(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, err := app.Test(multipartRequest(t, "bad.jpg", "image/jpeg", []byte("not really a jpeg")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Invalid image", decodeBody(t, resp)["detail"])
}

func TestDetect_NoDetections(t *testing.T) {
	app, root := newTestApp(t, nil)

	resp, err := app.Test(multipartRequest(t, "empty.png", "image/png", pngBytes(t)))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"bill":{"items":[],"total":0},"output_image":null,"message":"No products detected."}`, string(raw))
	require.Empty(t, resp.Header.Get(middleware.BillIDHeader))
	require.Equal(t, 1, storedFiles(t, root))
}

func TestDetect_Success(t *testing.T) {
	app, root := newTestApp(t, []entity.Detection{
		{Label: "Dermi Cool", Confidence: 0.9},
		{Label: "Dermi Cool", Confidence: 0.6},
	})

	resp, err := app.Test(multipartRequest(t, "counter.png", "image/png", pngBytes(t)))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get(middleware.BillIDHeader))
	require.NotEmpty(t, resp.Header.Get(middleware.RequestIDKey))

	var body struct {
		Bill        entity.Bill `json:"bill"`
		OutputImage *string     `json:"output_image"`
	}
	require.NoError(t, jsoniter.NewDecoder(resp.Body).Decode(&body))

	require.Equal(t, []entity.BillLine{{Item: "Dermi Cool", Quantity: 2, Price: 55, Subtotal: 110}}, body.Bill.Items)
	require.Equal(t, 110.0, body.Bill.Total)
	require.NotNil(t, body.OutputImage)
	require.Regexp(t, `^processed_images/processed_[0-9a-f]{32}\.png$`, *body.OutputImage)

	require.Equal(t, 2, storedFiles(t, root))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(*body.OutputImage)))
	require.NoError(t, err)
}

func TestDetect_DetectorFailureIs500(t *testing.T) {
	app, root := newTestAppWithDetector(t, &stubDetector{err: errors.New("inference server unreachable")})

	resp, err := app.Test(multipartRequest(t, "counter.png", "image/png", pngBytes(t)))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"detail":"detect products: inference server unreachable"}`, string(raw))
	require.Empty(t, resp.Header.Get(middleware.BillIDHeader))
	require.Equal(t, 1, storedFiles(t, root))
}

func TestGetBill_CacheDisabled(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/bills/01HXYZ", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestStream_RequiresUpgrade(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/checkout/ws", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
