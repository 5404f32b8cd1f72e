package cloudinary

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tachuswebservices/manglasports-sub001/config"
	"github.com/tachuswebservices/manglasports-sub001/models"
)

// Client talks to the Cloudinary upload API. Uploads return the delivery URL
// together with the public ID needed for a later destroy.
type Client struct {
	cfg        *config.CloudinaryConfig
	httpClient *http.Client
	baseURL    string
}

func NewClient(cfg *config.CloudinaryConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://api.cloudinary.com/v1_1",
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type destroyResponse struct {
	Result string `json:"result"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Upload sends one file with a signed request and returns {url, public_id}.
func (c *Client) Upload(file io.Reader, filename string) (*models.Image, error) {
	if c.cfg.CloudName == "" || c.cfg.APIKey == "" || c.cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary configuration missing")
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"timestamp": timestamp,
		"folder":    c.cfg.Folder,
	}

	var body strings.Builder
	writer := multipart.NewWriter(&body)
	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return nil, err
		}
	}
	if err := writer.WriteField("api_key", c.cfg.APIKey); err != nil {
		return nil, err
	}
	if err := writer.WriteField("signature", c.sign(params)); err != nil {
		return nil, err
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.cfg.CloudName)
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body.String()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach cloudinary: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var parsed uploadResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse cloudinary response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("cloudinary error: %s", parsed.Error.Message)
	}
	if parsed.SecureURL == "" || parsed.PublicID == "" {
		return nil, fmt.Errorf("cloudinary returned empty upload result (%d): %s", resp.StatusCode, string(raw))
	}

	return &models.Image{URL: parsed.SecureURL, PublicID: parsed.PublicID}, nil
}

// Destroy removes a previously uploaded asset by public ID.
func (c *Client) Destroy(publicID string) error {
	if c.cfg.CloudName == "" || c.cfg.APIKey == "" || c.cfg.APISecret == "" {
		return fmt.Errorf("cloudinary configuration missing")
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}

	form := make([]string, 0, len(params)+2)
	for key, value := range params {
		form = append(form, key+"="+value)
	}
	form = append(form, "api_key="+c.cfg.APIKey, "signature="+c.sign(params))

	url := fmt.Sprintf("%s/%s/image/destroy", c.baseURL, c.cfg.CloudName)
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(strings.Join(form, "&")))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach cloudinary: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var parsed destroyResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("failed to parse cloudinary response: %w", err)
	}
	if parsed.Error != nil {
		return fmt.Errorf("cloudinary error: %s", parsed.Error.Message)
	}
	if parsed.Result != "ok" && parsed.Result != "not found" {
		return fmt.Errorf("cloudinary destroy failed: %s", parsed.Result)
	}
	return nil
}

// sign builds the SHA1 request signature over the sorted parameter string.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.cfg.APISecret))
	return hex.EncodeToString(sum[:])
}
