package config

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/decker502/redflag/pkg/logging"
)

// DefaultDebounce 编辑器保存时常常连续触发多个事件，合并到一次重载
const DefaultDebounce = 200 * time.Millisecond

// Change 一批已去抖的文件变化（文件名为基本名，按字母排序）
type Change struct {
	Files []string
}

// Has 是否包含指定文件
func (c Change) Has(name string) bool {
	return slices.Contains(c.Files, name)
}

// Watcher 监听数据目录中指定文件的变化
//
// 只有 watcher 自己的 goroutine 访问 fsnotify；帧线程通过 Poll 非阻塞地取走变化，
// 重载本身始终在帧线程上执行。
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	dir      string
	files    []string
	debounce time.Duration
	changes  chan Change
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	pending  map[string]time.Time
}

// NewWatcher 创建监听 dir 下 files 的 watcher（尚未启动）
func NewWatcher(dir string, files ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Watcher{
		watcher:  fw,
		dir:      dir,
		files:    files,
		debounce: DefaultDebounce,
		changes:  make(chan Change, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		pending:  make(map[string]time.Time),
	}, nil
}

// SetDebounce 修改去抖时长，必须在 Start 之前调用
// 非正数使用 DefaultDebounce
func (w *Watcher) SetDebounce(d time.Duration) {
	if d <= 0 {
		d = DefaultDebounce
	}
	w.debounce = d
}

// Start 开始监听；非阻塞，ctx 取消或调用 Stop 后退出
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := w.watcher.Add(w.dir); err != nil {
		// 启动失败时释放 fsnotify 资源，调用方无需再 Stop
		_ = w.watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.running = true
	logging.L().Infof("[Watcher] watching %s for %v", w.dir, w.files)

	go w.run(ctx)
	return nil
}

// Stop 停止监听并等待 goroutine 退出，可重复调用
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		logging.L().Warnf("[Watcher] error closing watcher: %v", err)
	}
}

// Changes 变化通道（容量 1，未取走的变化会被合并）
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Poll 非阻塞地取走一批变化
func (w *Watcher) Poll() (Change, bool) {
	select {
	case c := <-w.changes:
		return c, true
	default:
		return Change{}, false
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(max(w.debounce/2, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.L().Errorf("[Watcher] %v", err)
		case now := <-ticker.C:
			w.flush(now)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	name := filepath.Base(event.Name)
	if !slices.Contains(w.files, name) {
		return
	}
	logging.L().Debugf("[Watcher] %s %s", event.Op, name)
	w.pending[name] = time.Now()
}

// flush 把静默超过去抖时长的文件作为一批变化发出
func (w *Watcher) flush(now time.Time) {
	var ready []string
	for name, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			ready = append(ready, name)
		}
	}
	if len(ready) == 0 {
		return
	}
	for _, name := range ready {
		delete(w.pending, name)
	}

	// 合并尚未被帧线程取走的变化
	select {
	case prev := <-w.changes:
		ready = append(ready, prev.Files...)
	default:
	}
	slices.Sort(ready)
	ready = slices.Compact(ready)

	w.changes <- Change{Files: ready}
}
