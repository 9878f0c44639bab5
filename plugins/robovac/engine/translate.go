package engine

import (
	"go.uber.org/zap"

	"github.com/joshp123/gohome-robovac/plugins/robovac/models"
)

// ToDevice maps a human value to the model's device value. Anything the
// table does not cover is returned unchanged.
func ToDevice(decl *models.Declaration, cmd models.Command, human any) any {
	spec, ok := decl.Spec(cmd)
	if !ok || !spec.Values.IsMapping() {
		return human
	}
	key, ok := human.(string)
	if !ok {
		return human
	}
	if device, ok := spec.Values.DeviceFor(key); ok {
		return device
	}
	return human
}

// LookupHuman is the silent reverse lookup used where a miss is expected.
func LookupHuman(decl *models.Declaration, cmd models.Command, device any) (string, bool) {
	spec, ok := decl.Spec(cmd)
	if !ok {
		return "", false
	}
	return spec.Values.HumanFor(device)
}

// Translator binds a declaration to a logger so decode misses are reported.
type Translator struct {
	decl   *models.Declaration
	log    *zap.SugaredLogger
	onMiss func(models.Command)
}

// NewTranslator returns a translator for decl. onMiss may be nil.
func NewTranslator(decl *models.Declaration, log *zap.SugaredLogger, onMiss func(models.Command)) *Translator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Translator{decl: decl, log: log, onMiss: onMiss}
}

func (t *Translator) Declaration() *models.Declaration {
	return t.decl
}

func (t *Translator) ToDevice(cmd models.Command, human any) any {
	return ToDevice(t.decl, cmd, human)
}

// ToHuman maps a raw device value back to its human label. Commands without
// a value table pass through silently. A value the table does not know is
// returned raw and logged.
func (t *Translator) ToHuman(cmd models.Command, device any) any {
	spec, ok := t.decl.Spec(cmd)
	if ok && spec.Values == nil {
		return device
	}
	if ok && spec.Values.Allows(device) {
		return device
	}
	if human, ok := spec.Values.HumanFor(device); ok {
		return human
	}
	t.log.Warnw("command value not found for model",
		"command", string(cmd),
		"value", device,
		"model", modelCode(t.decl),
	)
	if t.onMiss != nil {
		t.onMiss(cmd)
	}
	return device
}

func (t *Translator) FanSpeeds() []string {
	return FanSpeeds(t.decl)
}

// FanSpeeds lists the human fan speed labels declared by the model.
func FanSpeeds(decl *models.Declaration) []string {
	spec, ok := decl.Spec(models.CommandFanSpeed)
	if !ok {
		return []string{}
	}
	humans := spec.Values.Humans()
	if humans == nil {
		return []string{}
	}
	return humans
}

func modelCode(decl *models.Declaration) string {
	if decl == nil {
		return ""
	}
	return decl.Code
}
