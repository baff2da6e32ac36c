package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// ReceiptData dữ liệu cho template email hóa đơn
type ReceiptData struct {
	OrderCode    string
	TableName    string
	CustomerName string
	Items        []ReceiptItem
	TotalAmount  int64
	PaidAt       string
}

type ReceiptItem struct {
	Name     string
	Quantity int
	Price    int64
	SubTotal int64
}

const receiptTemplate = `
<h2>Cảm ơn quý khách!</h2>
<p>Đơn hàng <b>{{.OrderCode}}</b> ({{.TableName}}) đã được thanh toán lúc {{.PaidAt}}.</p>
<table border="1" cellpadding="6" cellspacing="0">
	<tr><th>Món</th><th>SL</th><th>Đơn giá</th><th>Thành tiền</th></tr>
	{{range .Items}}
	<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.Price}}đ</td><td>{{.SubTotal}}đ</td></tr>
	{{end}}
</table>
<p><b>Tổng cộng: {{.TotalAmount}}đ</b></p>
<p>Quét mã QR bên dưới để xem lại đơn hàng:</p>
<img src="cid:qr_receipt" alt="QR đơn hàng"/>
`

// SendReceiptEmail gửi email hóa đơn kèm QR mã đơn hàng (async)
func SendReceiptEmail(to string, data ReceiptData) {
	go func() { // Async để không delay response
		tmpl, err := template.New("receipt").Parse(receiptTemplate)
		if err != nil {
			log.Printf("Lỗi load template email: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("Lỗi render template email: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", fmt.Sprintf("Hóa đơn thanh toán - Mã đơn: %s", data.OrderCode))
		m.SetBody("text/html", body.String())

		// Nhúng QR code của mã đơn hàng
		qrBytes, err := GenerateQRCode(data.OrderCode, 400)
		if err == nil {
			m.Embed("qr_receipt.png", gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(qrBytes)
				return err
			}), gomail.SetHeader(map[string][]string{
				"Content-Type":        {"image/png"},
				"Content-ID":          {"<qr_receipt>"},
				"Content-Disposition": {"inline"},
			}))
		}

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email hóa đơn cho %s: %v", to, err)
		}
	}()
}
