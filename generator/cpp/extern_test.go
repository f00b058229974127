package cpp

import (
	"testing"

	"github.com/wippyai/qtbind/ir"
)

func TestExterns(t *testing.T) {
	f := &ir.File{Package: "p", Namespace: "app", Externs: []ir.ExternObject{
		{Name: "QTimer", Signals: []ir.Signal{{Name: "timeout"}}},
		{
			Name: "Sensor", Namespace: "ext", Include: `"ext/sensor.h"`,
			Signals: []ir.Signal{{Name: "reading", Params: []ir.Param{{Name: "value", Type: ir.TypeRef{Native: "::std::int32_t"}}}}},
		},
	}}
	ir.Normalize(f)
	if err := ir.Validate(f); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	u, ok := Externs(f, Options{IncludePrefix: "gen/"})
	if !ok {
		t.Fatal("no output for externs")
	}

	mustContain(t, "header", u.Header,
		"#pragma once",
		"#include <QtCore/QTimer>",
		`#include "ext/sensor.h"`,
		"#include <qtbind/signalhandler.h>",
		"namespace qtbind_q_timer {",
		"using QTimerCxxQtSignalHandlertimeout = ::qtbind::SignalHandler<struct QTimerCxxQtSignalParamstimeout*>;",
		"::QMetaObject::Connection QTimer_timeoutConnect(::QTimer& self, QTimerCxxQtSignalHandlertimeout closure, ::Qt::ConnectionType type);",
		"namespace ext::qtbind_sensor {",
	)
	mustContain(t, "source", u.Source,
		`#include "gen/p_externs.qtbind.h"`,
		"&::QTimer::timeout,",
		"const ::qtbind::MaybeLockGuard<::QTimer> guard(self);",
		"&::ext::Sensor::reading,",
	)
	mustNotContain(t, "header", u.Header, "app::")

	if _, ok := Externs(&ir.File{Package: "p"}, Options{}); ok {
		t.Error("output without externs")
	}
}
