package export

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/skip2/go-qrcode"
)

// QRSize is the edge length, in pixels, of generated QR images.
const QRSize = 256

// ClientURL joins the public base URL with the portal path for linkID.
func ClientURL(baseURL, linkID string) (string, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", domain.Validation("public base url %q must be absolute", baseURL)
	}
	return base.JoinPath("client", linkID).String(), nil
}

// ClientLinkQR renders a PNG QR code for the project's client portal.
func ClientLinkQR(baseURL string, p *domain.Project) ([]byte, error) {
	link, err := ClientURL(baseURL, p.ShareableLinkID)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(link, qrcode.Medium, QRSize)
	if err != nil {
		return nil, domain.IOFailure("encoding qr code", err)
	}
	return png, nil
}

// SaveClientLinkQR writes the PNG to path.
func SaveClientLinkQR(path, baseURL string, p *domain.Project) error {
	link, err := ClientURL(baseURL, p.ShareableLinkID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.IOFailure("creating export directory", err)
	}
	if err := qrcode.WriteFile(link, qrcode.Medium, QRSize, path); err != nil {
		return domain.IOFailure("writing qr code "+filepath.Base(path), err)
	}
	return nil
}
