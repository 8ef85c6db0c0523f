package server

import (
	"bufio"
	"errors"
	"net"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tinyserve/internal/protocol"
	"tinyserve/internal/resolver"
)

// Handler は1接続分のリクエスト処理を担う
//
// 保持する値はすべて不変で、複数のワーカーから同時に使用できる。
type Handler struct {
	resolver    *resolver.Resolver
	placeholder string
	now         func() time.Time
	log         zerolog.Logger
}

// NewHandler は新しいHandlerを作成する
func NewHandler(r *resolver.Resolver, placeholder string, logger zerolog.Logger) *Handler {
	return &Handler{
		resolver:    r,
		placeholder: placeholder,
		now:         time.Now,
		log:         logger,
	}
}

// session は1接続の処理状態
type session struct {
	h        *Handler
	conn     net.Conn
	reader   *bufio.Reader
	req      *protocol.Request
	resource resolver.Resource
	res      *protocol.Response
	log      zerolog.Logger
}

// stateFunc は次の状態を返す状態関数（nil で終了）
type stateFunc func(*session) stateFunc

// Serve は接続を処理し、必ず接続を閉じる
func (h *Handler) Serve(conn net.Conn) {
	s := &session{
		h:      h,
		conn:   conn,
		reader: bufio.NewReader(conn),
		log: h.log.With().
			Str("conn_id", uuid.New().String()).
			Str("remote", remoteAddr(conn)).
			Logger(),
	}

	// panicが発生しても接続は閉じる
	defer s.close()

	for state := parseLine; state != nil; {
		state = state(s)
	}
}

// 状態関数

// parseLine はリクエストラインを読み込む
func parseLine(s *session) stateFunc {
	req, err := protocol.ReadRequest(s.reader)
	if err != nil {
		if errors.Is(err, protocol.ErrMalformedRequest) {
			s.log.Debug().Msg("不正なリクエストラインを受信しました")
			s.res = protocol.NewResponse(protocol.StatusBadRequest, nil, "")
			return respond
		}
		s.log.Error().Err(err).Msg("リクエストの読み込みに失敗しました")
		return finish
	}

	s.req = req
	s.log = s.log.With().Str("method", req.Method).Str("path", req.Path).Logger()
	return resolve
}

// resolve はパスをホワイトリストで検証する
func resolve(s *session) stateFunc {
	resource, err := s.h.resolver.Resolve(s.req.Path)
	if err != nil {
		s.log.Debug().Msg("ホワイトリストにないパスです")
		s.res = protocol.NewResponse(protocol.StatusNotFound, nil, "")
		return respond
	}

	s.resource = resource
	if resource.Kind == resolver.KindTemplate {
		return respondTemplate
	}
	return respondStatic
}

// respondStatic はファイルの内容をそのまま返す
func respondStatic(s *session) stateFunc {
	content, err := os.ReadFile(s.resource.FilePath)
	if err != nil {
		// I/O障害には応答しない
		s.log.Error().Err(err).Str("file", s.resource.FilePath).Msg("ファイルの読み込みに失敗しました")
		return finish
	}

	s.res = protocol.NewResponse(protocol.StatusOK, content, s.resource.ContentType)
	return respond
}

// respondTemplate はプレースホルダーを置換した内容を返す
func respondTemplate(s *session) stateFunc {
	content, err := os.ReadFile(s.resource.FilePath)
	if err != nil {
		s.log.Error().Err(err).Str("file", s.resource.FilePath).Msg("テンプレートの読み込みに失敗しました")
		return finish
	}

	body := []byte(RenderTemplate(string(content), s.h.placeholder, s.h.now()))
	s.res = protocol.NewResponse(protocol.StatusOK, body, s.resource.ContentType)
	return respond
}

// respond はレスポンスを書き込む
func respond(s *session) stateFunc {
	if err := protocol.WriteResponse(s.conn, s.res); err != nil {
		s.log.Error().Err(err).Msg("レスポンスの書き込みに失敗しました")
		return finish
	}

	s.log.Info().Str("status", string(s.res.Status)).Int("bytes", len(s.res.Body)).Msg("レスポンスを送信しました")
	return finish
}

// finish は処理を終了する（接続は Serve の defer で閉じる）
func finish(s *session) stateFunc {
	return nil
}

// close は接続を一度だけ閉じる
func (s *session) close() {
	if s.conn == nil {
		return
	}
	if err := s.conn.Close(); err != nil {
		s.log.Debug().Err(err).Msg("接続のクローズに失敗しました")
	}
	s.conn = nil
}

// remoteAddr は接続元アドレスを返す
func remoteAddr(conn net.Conn) string {
	if addr := conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}
