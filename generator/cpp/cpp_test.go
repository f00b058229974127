package cpp

import (
	"strings"
	"testing"

	"github.com/wippyai/qtbind/ir"
	"github.com/wippyai/qtbind/marshal"
)

func loadMyObject(t *testing.T) (*ir.File, *ir.Object) {
	t.Helper()
	f, err := ir.LoadFile("../../ir/testdata/my_object.yaml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	return f, &f.Objects[0]
}

func mustContain(t *testing.T, what, text string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(text, want) {
			t.Errorf("%s does not contain %q", what, want)
		}
	}
}

func mustNotContain(t *testing.T, what, text string, unwanted ...string) {
	t.Helper()
	for _, u := range unwanted {
		if strings.Contains(text, u) {
			t.Errorf("%s unexpectedly contains %q", what, u)
		}
	}
}

// mustOrder checks that each string appears after the previous one.
func mustOrder(t *testing.T, what, text string, parts ...string) {
	t.Helper()
	pos := 0
	for _, p := range parts {
		i := strings.Index(text[pos:], p)
		if i < 0 {
			t.Errorf("%s: %q missing or out of order", what, p)
			return
		}
		pos += i + len(p)
	}
}

func TestObject_Header(t *testing.T) {
	f, o := loadMyObject(t)
	h := Object(f, o, Options{IncludePrefix: "gen/"}).Header

	mustContain(t, "header", h,
		Banner,
		"#pragma once",
		"#include <qtbind/signalhandler.h>",
		`#include "gen/myobject_types.qtbind.h"`,
		"using MyObjectCxxQtThread = ::qtbind::Thread<MyObject>;",
		"Q_PROPERTY(::std::int32_t count READ getCount WRITE setCount NOTIFY countChanged)",
		"Q_PROPERTY(QString label READ getLabel WRITE setLabel NOTIFY labelChanged)",
		"Q_PROPERTY(::std::int32_t version READ getVersion CONSTANT)",
		"QML_ELEMENT",
		"enum class State : ::std::int32_t",
		"Running = 1,",
		"Q_ENUM(State)",
		"::std::int32_t getCount() const;",
		"Q_SLOT void setCount(::std::int32_t value);",
		"Q_SLOT void setLabel(QString const& value);",
		"Q_SIGNAL void ready();",
		"Q_SIGNAL void dataChanged(::std::int32_t first, QPoint second);",
		"Q_SIGNAL void countChanged();",
		"void emitDataChanged(::std::int32_t first, QPoint second);",
		"Q_INVOKABLE void increment();",
		"Q_INVOKABLE ::std::int32_t sum(::std::int32_t a, ::std::int32_t b) const;",
		"Q_INVOKABLE virtual void reset();",
		"void nativeHelper() const;",
		"MyObjectCxxQtThread qtThread() const;",
		"explicit MyObject(::std::int32_t arg0, QString const& arg1);",
		"explicit MyObject(::cxx_qt::my_object::qtbind_my_object::CxxQtConstructorArguments0&& args);",
		"CxxQtConstructorArguments0 routeArguments0(::std::int32_t arg0, QString const& arg1);",
		"::std::unique_ptr<MyObjectHost> newHost0(CxxQtConstructorNewArguments0&& args);",
		"void initialize0(::cxx_qt::my_object::MyObject& self, CxxQtConstructorInitializeArguments0&& args);",
		"using MyObjectCxxQtSignalHandlerready = ::qtbind::SignalHandler<struct MyObjectCxxQtSignalParamsready*>;",
		"::QMetaObject::Connection MyObject_dataChangedConnect(::cxx_qt::my_object::MyObject& self, MyObjectCxxQtSignalHandlerdataChanged closure, ::Qt::ConnectionType type);",
		"bool MyObject_setCount(::cxx_qt::my_object::MyObject& self, ::std::int32_t value);",
		"static_assert(::std::is_base_of<QObject, MyObject>::value, \"MyObject must inherit from QObject\");",
		"void registerMyObjectQmlType(char const* uri, int major, int minor);",
		"Q_DECLARE_METATYPE(cxx_qt::my_object::MyObject*)",
	)

	mustNotContain(t, "header", h,
		"Q_SIGNAL void objectNameChanged",
		"Q_SIGNAL void versionChanged",
		"MyObject_nativeHelper",
		"setVersion",
	)

	mustOrder(t, "base classes", h,
		"class MyObject\n",
		": public QObject",
		", public ::qtbind::Type<::cxx_qt::my_object::qtbind_my_object::MyObjectHost>",
		", public ::qtbind::Locking",
		", public ::qtbind::Threading<::cxx_qt::my_object::MyObject>",
		"{",
		"Q_OBJECT",
	)
}

func TestObject_Source(t *testing.T) {
	f, o := loadMyObject(t)
	src := Object(f, o, Options{}).Source

	mustContain(t, "source", src,
		`#include "my_object.qtbind.h"`,
		"namespace qtbind {",
		"::qtbind::SignalHandler<::cxx_qt::my_object::qtbind_my_object::MyObjectCxxQtSignalParamsready*>::~SignalHandler() noexcept",
		"if (data[0] == 0 && data[1] == 0) {",
		"::cxx_qt::my_object::qtbind_my_object::drop_MyObject_signal_handler_ready(::std::move(*this));",
		"static_assert(alignof(::qtbind::SignalHandler<::cxx_qt::my_object::qtbind_my_object::MyObjectCxxQtSignalParamsready*>) <= alignof(::std::size_t), \"unexpected alignment\");",
		"static_assert(sizeof(::qtbind::SignalHandler<::cxx_qt::my_object::qtbind_my_object::MyObjectCxxQtSignalParamsready*>) == sizeof(::std::size_t[2]), \"unexpected size\");",
		"::call_MyObject_signal_handler_dataChanged(*this, self, ::std::move(first), ::std::move(second));",
		"&::cxx_qt::my_object::MyObject::dataChanged,",
		"&QObject::objectNameChanged,",
		"closure.template operator()<::cxx_qt::my_object::MyObject&, ::std::int32_t, QPoint>(self, ::std::move(first), ::std::move(second));",
		"const ::qtbind::MaybeLockGuard<::cxx_qt::my_object::MyObject> guard(self);",
		"const ::qtbind::MaybeLockGuard<::cxx_qt::my_object::MyObject> guard(*this);",
		"return ::qtbind::convert<::std::int32_t, ::std::int32_t>(::cxx_qt::my_object::qtbind_my_object::MyObject_getCount(*this));",
		"if (::cxx_qt::my_object::qtbind_my_object::MyObject_setCount(*this, ::std::move(value)) && initialized()) {",
		"emitCountChanged();",
		"::Qt::QueuedConnection);",
		"Q_ASSERT(signalSuccess);",
		"[this, first = ::std::move(first), second = ::std::move(second)]() mutable { Q_EMIT dataChanged(::std::move(first), ::std::move(second)); },",
		"::cxx_qt::my_object::qtbind_my_object::MyObject_increment(*this);",
		"qmlRegisterType<::cxx_qt::my_object::MyObject>(uri, major, minor, \"MyObject\");",
		"void\nregisterMyObjectQmlType(char const* uri, int major, int minor)\n{\n  ::qtbind::registerNumericAliases();\n",
		"MyObject::~MyObject()\n{\n  invalidateThread();\n}",
		"return threadHandle();",
	)

	mustNotContain(t, "source", src, "MyObject::nativeHelper")

	mustOrder(t, "routed constructor", src,
		"MyObject::MyObject(::std::int32_t arg0, QString const& arg1)",
		": MyObject(::cxx_qt::my_object::qtbind_my_object::routeArguments0(::std::move(arg0), arg1))",
		"MyObject::MyObject(::cxx_qt::my_object::qtbind_my_object::CxxQtConstructorArguments0&& args)",
		": QObject(::std::move(args.base.arg0))",
		", ::qtbind::Type<::cxx_qt::my_object::qtbind_my_object::MyObjectHost>(::cxx_qt::my_object::qtbind_my_object::newHost0(::std::move(args.new_)))",
		", ::qtbind::Threading<::cxx_qt::my_object::MyObject>(this)",
		"::cxx_qt::my_object::qtbind_my_object::initialize0(*this, ::std::move(args.initialize));",
		"markInitialized();",
	)
}

func TestObject_Minimal(t *testing.T) {
	f := &ir.File{Package: "p", Objects: []ir.Object{{
		Name:       "Plain",
		NoLocking:  true,
		Properties: []ir.Property{{Name: "id", Type: ir.TypeRef{Native: "::std::int64_t"}, ReadOnly: true}},
		Signals:    []ir.Signal{{Name: "secret", Private: true}},
		Inherited: []ir.InheritedMethod{{
			Name:   "children",
			Return: &ir.TypeRef{Native: "QObjectList const&"},
		}},
	}}}
	ir.Normalize(f)
	if err := ir.Validate(f); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	u := Object(f, &f.Objects[0], Options{})

	mustContain(t, "header", u.Header,
		"Q_PROPERTY(::std::int64_t id READ getId NOTIFY idChanged)",
		", public ::qtbind::NoLocking",
		"explicit Plain(QObject* parent = nullptr);",
		"::std::unique_ptr<PlainHost> createHost();",
		"template<class... Args>\n  QObjectList const& childrenCxxQtInherit(Args... args) const\n  {\n    return QObject::children(args...);\n  }",
		"private:\n  void emitSecret();",
		"::qtbind::SignalHandler<struct PlainCxxQtSignalParamssecret*>;",
		"::QMetaObject::Connection Plain_secretConnect(",
	)
	mustNotContain(t, "header", u.Header,
		"<qtbind/locking.h>",
		"<qtbind/thread.h>",
		"namespace  {",
		"QML_ELEMENT",
		"setId",
		"_types.qtbind.h",
	)

	// Global namespace objects have no enclosing namespace block.
	if !strings.Contains(u.Header, "\nclass Plain;\n") {
		t.Error("missing global forward declaration")
	}
	mustContain(t, "source", u.Source,
		"Plain::Plain(QObject* parent)\n  : QObject(parent)\n  , ::qtbind::Type<::qtbind_plain::PlainHost>(::qtbind_plain::createHost())\n{\n  markInitialized();\n}",
		"Plain::~Plain()\n{\n}",
	)
}

func TestObject_Deterministic(t *testing.T) {
	f, o := loadMyObject(t)
	a := Object(f, o, Options{})
	b := Object(f, o, Options{})
	if a != b {
		t.Error("generation is not deterministic")
	}
}

func TestQMLVariants(t *testing.T) {
	tests := []struct {
		name string
		qml  ir.QMLElement
		meta string
		call string
	}{
		{"named", ir.QMLElement{Name: "Counter"}, "QML_NAMED_ELEMENT(Counter)", `qmlRegisterType<::A>(uri, major, minor, "Counter");`},
		{"singleton", ir.QMLElement{Singleton: true}, "QML_SINGLETON", `qmlRegisterSingletonType<::A>(uri, major, minor, "A",`},
		{"uncreatable", ir.QMLElement{Uncreatable: true}, `QML_UNCREATABLE("")`, `qmlRegisterUncreatableType<::A>(uri, major, minor, "A", QString());`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			qml := tc.qml
			f := &ir.File{
				Package: "p",
				QML:     &ir.QMLModule{URI: "com.example", Major: 1},
				Objects: []ir.Object{{Name: "A", QML: &qml}},
			}
			ir.Normalize(f)
			u := Object(f, &f.Objects[0], Options{})
			mustContain(t, "header", u.Header, tc.meta)
			mustContain(t, "source", u.Source, tc.call)
		})
	}
}

func TestInvokableSpecifiers(t *testing.T) {
	f := &ir.File{Package: "p", Objects: []ir.Object{{
		Name: "A",
		Invokables: []ir.Invokable{
			{Name: "f", Invokable: true, Specifiers: ir.Specifiers{Final: true}},
			{Name: "o", Invokable: true, Mutable: true, Specifiers: ir.Specifiers{Override: true}},
			{Name: "hostOnly", CxxName: "host_only"},
		},
	}}}
	ir.Normalize(f)
	h := Object(f, &f.Objects[0], Options{}).Header
	mustContain(t, "header", h,
		"Q_INVOKABLE void f() const final;",
		"Q_INVOKABLE void o() override;",
		"\n  void host_only() const;",
		"void A_hostOnly(::A const& self);",
	)
}

func TestTypes(t *testing.T) {
	f, _ := loadMyObject(t)
	f.Enums = []ir.Enum{{Name: "Mode", Namespace: "cxx_qt::my_object", Values: []ir.EnumValue{{Name: "Big", Value: 1 << 40}}}}

	src, ok := Types(f, marshal.LP64)
	if !ok {
		t.Fatal("expected a types header")
	}
	mustContain(t, "types", src,
		"#include <QtCore/QObject>\n#include <QtCore/QPoint>\n",
		"namespace cxx_qt::my_object {\nQ_NAMESPACE",
		"enum class Mode : ::std::int64_t",
		"Q_ENUM_NS(Mode)",
		`static_assert(sizeof(QPoint) == 8, "Point: unexpected size");`,
		`static_assert(alignof(QPoint) == 4, "Point: unexpected alignment");`,
		"::std::is_trivially_copyable<QPoint>::value",
	)

	if _, ok := Types(&ir.File{Package: "p"}, marshal.LP64); ok {
		t.Error("file without enums or value types has no types header")
	}
}

func TestValueIncludes(t *testing.T) {
	f := &ir.File{Package: "p", ValueTypes: []ir.ValueType{
		{Name: "Point", Native: "QPoint"},
		{Name: "Size", Native: "QSizeF", Include: "<QtCore/QSizeF>"},
		{Name: "Pair", Native: "::demo::Pair", Include: `"demo/pair.h"`},
		{Name: "Raw", Native: "raw_t"},
		{Name: "Again", Native: "QPoint"},
	}}
	got := valueIncludes(f)
	want := []string{"<QtCore/QPoint>", "<QtCore/QSizeF>", `"demo/pair.h"`}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("valueIncludes = %v, want %v", got, want)
	}
}

func TestPlugin(t *testing.T) {
	f, _ := loadMyObject(t)
	src, ok := Plugin(f, Options{IncludePrefix: "gen/"})
	if !ok {
		t.Fatal("expected plugin source")
	}
	mustContain(t, "plugin", src,
		"class MyobjectPlugin : public QQmlExtensionPlugin",
		"Q_PLUGIN_METADATA(IID QQmlExtensionInterface_iid)",
		`#include "gen/my_object.qtbind.h"`,
		"void registerTypes(char const* uri) override\n  {\n    ::qtbind::registerNumericAliases();\n    ::cxx_qt::my_object::registerMyObjectQmlType(uri, 1, 0);",
		`#include "qml_plugin.moc"`,
	)

	f.QML = nil
	if _, ok := Plugin(f, Options{}); ok {
		t.Error("file without QML module has no plugin")
	}
}
