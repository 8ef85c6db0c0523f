package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Status はレスポンスのステータスライン識別子
type Status string

const (
	StatusOK         Status = "200 OK"
	StatusBadRequest Status = "400 Bad Request"
	StatusNotFound   Status = "404 Not Found"
)

// Header は順序を保持するヘッダー1件
type Header struct {
	Name  string
	Value string
}

// Response は1回だけ書き込まれるレスポンス
type Response struct {
	Status  Status
	Headers []Header
	Body    []byte // nil の場合はボディなし
}

// NewResponse はステータス・ボディ・Content-Typeからレスポンスを組み立てる
//
// contentType が空の場合、Content-Type ヘッダーは出力しない。
func NewResponse(status Status, body []byte, contentType string) *Response {
	res := &Response{Status: status, Body: body}

	if body != nil {
		if contentType != "" {
			res.Headers = append(res.Headers, Header{"Content-Type", contentType})
		}
		res.Headers = append(res.Headers, Header{"Content-Length", strconv.Itoa(len(body))})
	} else {
		res.Headers = append(res.Headers, Header{"Content-Length", "0"})
	}
	res.Headers = append(res.Headers, Header{"Connection", "close"})

	return res
}

// HasBody はボディを持つかどうかを返す
func (r *Response) HasBody() bool {
	return r.Body != nil
}

// WriteResponse はヘッダーブロックを1回でフラッシュし、続けてボディを書き込む
func WriteResponse(w io.Writer, res *Response) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "HTTP/1.1 %s\r\n", res.Status)
	for _, h := range res.Headers {
		fmt.Fprintf(bw, "%s: %s\r\n", h.Name, h.Value)
	}
	bw.WriteString("\r\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("ヘッダーの書き込みに失敗: %w", err)
	}

	if res.HasBody() {
		if _, err := bw.Write(res.Body); err != nil {
			return fmt.Errorf("ボディの書き込みに失敗: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("ボディの書き込みに失敗: %w", err)
	}

	return nil
}
