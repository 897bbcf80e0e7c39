package worker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// renderTemplatePage opens the installed template's entry page in a headless
// browser and returns it fully loaded. extraHeaders are key/value pairs sent
// with every request, used to pass the internal API secret.
func renderTemplatePage(logger *slog.Logger, targetURL string, extraHeaders []string) (_ *rod.Page, cleanup func(), err error) {
	cleanup = func() {}

	logger.Info("navigating to template page", slog.String("url", targetURL))

	launch := launcher.New().
		Headless(true).
		NoSandbox(true)
	defer func() {
		if err != nil {
			launch.Cleanup()
		}
	}()

	if path, ok := launcher.LookPath(); ok {
		launch = launch.Bin(path)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, cleanup, fmt.Errorf("launch chromium: %w", err)
	}

	browser := rod.New().ControlURL(browserURL).Timeout(90 * time.Second)
	if err := browser.Connect(); err != nil {
		return nil, cleanup, fmt.Errorf("connect browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		launch.Cleanup()
		return nil, func() {}, fmt.Errorf("open page: %w", err)
	}
	cleanup = func() {
		if page != nil {
			_ = page.Close()
		}
		_ = browser.Close()
		launch.Cleanup()
	}

	if len(extraHeaders) > 0 {
		if _, err := page.SetExtraHeaders(extraHeaders); err != nil {
			return nil, cleanup, fmt.Errorf("set extra headers: %w", err)
		}
	}

	if err := page.Navigate(targetURL); err != nil {
		return nil, cleanup, fmt.Errorf("navigate: %w", err)
	}

	page.MustWaitLoad()

	// Let webfonts settle so the thumbnail does not show fallback metrics.
	if _, evalErr := page.Timeout(5 * time.Second).Eval(`() => {
	  if (document && document.fonts && document.fonts.ready) {
	    return Promise.race([
	      document.fonts.ready.then(() => true),
	      new Promise((resolve) => setTimeout(() => resolve(true), 3000))
	    ]);
	  }
	  return true;
	}`); evalErr != nil {
		logger.Warn("font readiness wait failed, continuing", slog.Any("error", evalErr))
	}

	page.MustWaitIdle()
	return page, cleanup, nil
}

func capturePreparedScreenshot(page *rod.Page, quality int) ([]byte, error) {
	element, err := page.Timeout(5 * time.Second).Element("main")
	if err == nil {
		if data, shotErr := element.Screenshot(proto.PageCaptureScreenshotFormatJpeg, quality); shotErr == nil {
			return data, nil
		}
	}

	req := &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: intPtr(quality),
	}
	data, err := page.Screenshot(true, req)
	if err != nil {
		return nil, fmt.Errorf("page screenshot: %w", err)
	}
	return data, nil
}

func intPtr(value int) *int {
	return &value
}
