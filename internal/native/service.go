package native

import (
	"errors"
	"log/slog"
)

// platform bundles the OS-specific pieces of the service.
type platform struct {
	supported         bool
	procs             procTable
	icons             IconLoader
	taskbar           Taskbar
	hider             windowHider
	taskbarCreatedMsg uint32
}

// Options configures NewService.
type Options struct {
	// Dispatcher receives thumb-button clicks.
	Dispatcher Dispatcher
	// Policy is read on every minimize and close request.
	Policy PolicySource
	// IconDirs overrides the icon search path; see DefaultIconDirs.
	IconDirs []string
	IconRoot string
	Logger   *slog.Logger

	OnThumbClick   func(ButtonID)
	OnHiddenToTray func()
}

// Service owns the process-wide native state of the main window: the
// current handle, the icon cache, the taskbar publisher and the subclass
// chain shared by the thumb-click router and the minimize hook. It is built
// once at startup and torn down once by Cleanup.
type Service struct {
	log       *slog.Logger
	supported bool
	policy    PolicySource

	handles   HandleRegistry
	icons     *IconCache
	publisher *Publisher
	subclass  *Subclass
	router    *ThumbClickRouter
	minimize  *MinimizeHook
}

// NewService builds the service for the running platform. On platforms
// without a thumbnail toolbar every operation is a no-op.
func NewService(opts Options) *Service {
	return newService(newPlatform(), opts)
}

func newService(p platform, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	policy := opts.Policy
	if policy == nil {
		policy = PolicyFunc(func() PolicyFlags { return PolicyFlags{CloseToTray: true} })
	}
	dirs, root := opts.IconDirs, opts.IconRoot
	if dirs == nil {
		dirs, root = DefaultIconDirs()
	}

	s := &Service{
		log:       log,
		supported: p.supported,
		policy:    policy,
		icons:     NewIconCache(p.icons, dirs, root, log),
		publisher: NewPublisher(p.taskbar, log),
	}
	s.router = NewThumbClickRouter(opts.Dispatcher, log)
	s.router.OnClick = opts.OnThumbClick
	s.minimize = NewMinimizeHook(policy, p.hider, log)
	s.minimize.OnHidden = opts.OnHiddenToTray
	s.subclass = NewSubclass(p.procs,
		s.router,
		s.minimize,
		&taskbarButtonHook{msg: p.taskbarCreatedMsg, recreated: s.taskbarButtonRecreated},
	)
	return s
}

// Supported reports whether this platform has the native integration.
func (s *Service) Supported() bool { return s.supported }

// SetHandle records the current main window handle.
func (s *Service) SetHandle(h uintptr) { s.handles.Set(h) }

// Handle returns the current main window handle.
func (s *Service) Handle() (uintptr, bool) { return s.handles.Get() }

// AddThumbButtons loads the icons, installs the subclass chain on the
// current handle and publishes the thumb buttons. Safe to call on every
// page load and every restore.
func (s *Service) AddThumbButtons() error {
	if !s.supported {
		return nil
	}
	h, ok := s.handles.Get()
	if !ok {
		return ErrNoHandle
	}
	icons := s.icons.Load()

	var errs []error
	if _, err := s.subclass.Install(h); err != nil {
		errs = append(errs, err)
	}
	if err := s.publisher.Publish(h, icons); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Refresh records h and republishes. Used after the window was shown again.
func (s *Service) Refresh(h uintptr) error {
	s.SetHandle(h)
	return s.AddThumbButtons()
}

// RemoveThumbButtons hides the buttons and removes the subclass chain,
// which also disables minimize-to-tray until the next AddThumbButtons.
func (s *Service) RemoveThumbButtons() error {
	if !s.supported {
		return nil
	}
	h, _ := s.subclass.Installed()
	s.subclass.Uninstall()
	if h == 0 {
		return nil
	}
	return s.publisher.Hide(h)
}

// HandleCloseRequest applies the close policy. It returns true when the
// window should only be hidden; otherwise native resources are released
// and the caller lets the application exit.
func (s *Service) HandleCloseRequest() bool {
	if s.policy.PolicyFlags().CloseToTray {
		return true
	}
	s.Cleanup()
	return false
}

// Cleanup removes the subclass and frees the icons. Calling it again is
// harmless.
func (s *Service) Cleanup() {
	s.subclass.Uninstall()
	s.icons.Cleanup()
}

// taskbarButtonRecreated runs inside the window procedure; publishing talks
// to the shell, so it happens on another goroutine.
func (s *Service) taskbarButtonRecreated(hwnd uintptr) {
	go func() {
		s.publisher.Forget(hwnd)
		if err := s.publisher.Publish(hwnd, s.icons.Load()); err != nil {
			s.log.Debug("republishing thumb buttons failed", "hwnd", hwnd, "error", err)
		}
	}()
}
