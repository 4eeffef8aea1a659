package forms

import (
	"path/filepath"
	"strings"

	"github.com/gravitational/trace"
	"github.com/jmptrader/robotest-web/e2e/runtime"
	"github.com/jmptrader/robotest-web/e2e/uimodel/defaults"
	"github.com/jmptrader/robotest-web/e2e/uimodel/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const (
	fileInput     = "#file-upload"
	uploadButton  = "#file-submit"
	uploadedFiles = "#uploaded-files"
	dragDropArea  = "#drag-drop-upload"
)

// FileUploadPage is the ui model of the file upload page
type FileUploadPage struct {
	t  *runtime.TContext
	fs afero.Fs
}

// OpenFileUpload navigates to the upload page. Files to upload are looked
// up on fs, the OS filesystem if nil.
func OpenFileUpload(t *runtime.TContext, fs afero.Fs) (*FileUploadPage, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := utils.Open(t, defaults.FileUploadURL); err != nil {
		return nil, trace.Wrap(err)
	}
	return &FileUploadPage{t: t, fs: fs}, nil
}

// IsDisplayed returns true if the upload heading is shown
func (p *FileUploadPage) IsDisplayed() bool {
	heading, err := utils.Text(p.t, headingHeader)
	return err == nil && strings.Contains(heading, "File Upload")
}

// SelectFile puts path into the file input
func (p *FileUploadPage) SelectFile(path string) error {
	exists, err := afero.Exists(p.fs, path)
	if err != nil {
		return trace.ConvertSystemError(err)
	}
	if !exists {
		return trace.NotFound("file %v does not exist", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return trace.Wrap(err)
	}
	el, err := p.t.Wait.ForClickable(fileInput)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := el.UploadFile(abs); err != nil {
		return trace.Wrap(err, "failed to select %v", abs)
	}
	log.Infof("selected %v for upload", abs)
	return nil
}

// Upload submits the selected file
func (p *FileUploadPage) Upload() error {
	return trace.Wrap(utils.Click(p.t, uploadButton))
}

// UploadedFileName returns the name reported after upload
func (p *FileUploadPage) UploadedFileName() (string, error) {
	text, err := utils.Text(p.t, uploadedFiles)
	if err != nil {
		return "", trace.Wrap(err)
	}
	return strings.TrimSpace(text), nil
}

// IsFileUploaded returns true if the upload result lists name
func (p *FileUploadPage) IsFileUploaded(name string) bool {
	text, err := p.UploadedFileName()
	return err == nil && strings.Contains(text, name)
}

// UploadAndVerify selects path, submits it and checks the result lists name
func (p *FileUploadPage) UploadAndVerify(path, name string) error {
	if err := p.SelectFile(path); err != nil {
		return trace.Wrap(err)
	}
	if err := p.Upload(); err != nil {
		return trace.Wrap(err)
	}
	if !p.IsFileUploaded(name) {
		return trace.CompareFailed("upload of %v was not confirmed", name)
	}
	return nil
}

// SelectedFileName returns the base name of the selected file, "" if none
func (p *FileUploadPage) SelectedFileName() string {
	value, err := p.t.Session.Find(fileInput).Attribute("value")
	if err != nil || value == "" {
		return ""
	}
	// browsers report C:\fakepath\name
	if i := strings.LastIndexAny(value, `/\`); i >= 0 {
		return value[i+1:]
	}
	return value
}

// IsUploadEnabled returns true if the upload button can be clicked
func (p *FileUploadPage) IsUploadEnabled() bool {
	return utils.IsEnabled(p.t.Session, uploadButton)
}

// IsDragDropVisible returns true if the drag and drop area is shown
func (p *FileUploadPage) IsDragDropVisible() bool {
	return utils.IsDisplayed(p.t.Session, dragDropArea)
}
