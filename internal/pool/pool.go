// Package pool は固定数のワーカーでタスクを並行実行するワーカープールを提供する
//
// # 仕様
//   - ワーカー数は生成時に固定される
//   - Submit はワーカーの空きを待たない（キューは上限なしのFIFO）
//   - タスク内のpanicは回復してログに記録し、ワーカーは動作を続ける
//   - Stop は新規受付を止め、キューに残ったタスクを処理してから終了する
package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// ErrClosed は停止済みのプールにタスクを投入した場合に返される
var ErrClosed = errors.New("ワーカープールは停止しています")

// Task はワーカーで実行される作業単位
type Task func()

// Stats はプールの状態
type Stats struct {
	Size      int    `json:"size"`
	Active    int    `json:"active"`
	Queued    int    `json:"queued"`
	Completed uint64 `json:"completed"`
}

// Pool は固定サイズのワーカープール
type Pool struct {
	size int
	log  zerolog.Logger

	mu        sync.Mutex
	cond      *sync.Cond
	queue     []Task
	closed    bool
	active    int
	completed uint64

	wg sync.WaitGroup
}

// New は size 個のワーカーを起動したプールを作成する
func New(size int, logger zerolog.Logger) (*Pool, error) {
	if size < 1 {
		return nil, fmt.Errorf("無効なワーカー数: %d", size)
	}

	p := &Pool{
		size: size,
		log:  logger.With().Str("component", "pool").Logger(),
	}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker(i)
	}

	return p, nil
}

// Submit はタスクをキューに追加する
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	p.queue = append(p.queue, task)
	p.cond.Signal()
	return nil
}

// Stop は新規受付を停止し、全ワーカーの終了を待つ
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.log.Debug().Msg("全ワーカーが終了しました")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("ワーカーの終了待ちが中断されました: %w", ctx.Err())
	}
}

// Stats は現在の状態を返す
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Stats{
		Size:      p.size,
		Active:    p.active,
		Queued:    len(p.queue),
		Completed: p.completed,
	}
}

// Size はワーカー数を返す
func (p *Pool) Size() int {
	return p.size
}

// worker はキューからタスクを取り出して実行し続ける
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		task, ok := p.next()
		if !ok {
			return
		}
		p.run(id, task)
	}
}

// next は次のタスクを待つ（停止済みかつキューが空なら false）
func (p *Pool) next() (Task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) == 0 {
		if p.closed {
			return nil, false
		}
		p.cond.Wait()
	}

	task := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]
	p.active++
	return task, true
}

// run はタスクを実行する（panicは回復する）
func (p *Pool) run(id int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Int("worker", id).Interface("panic", r).Msg("タスクがpanicしました")
		}

		p.mu.Lock()
		p.active--
		p.completed++
		p.mu.Unlock()
	}()

	task()
}
