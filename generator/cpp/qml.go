package cpp

import (
	"fmt"

	"github.com/wippyai/qtbind/ir"
)

func registerName(o *ir.Object) string {
	return "register" + o.Name + "QmlType"
}

func generateQML(o *ir.Object, n names) *Blocks {
	b := &Blocks{}
	if o.QML == nil {
		return b
	}
	b.Include("<QtQml/QQmlEngine>")

	if o.QML.Name == "" {
		b.Metaobjects = append(b.Metaobjects, "QML_ELEMENT")
	} else {
		b.Metaobjects = append(b.Metaobjects, fmt.Sprintf("QML_NAMED_ELEMENT(%s)", o.QML.Name))
	}
	if o.QML.Singleton {
		b.Metaobjects = append(b.Metaobjects, "QML_SINGLETON")
	}
	if o.QML.Uncreatable {
		b.Metaobjects = append(b.Metaobjects, `QML_UNCREATABLE("")`)
	}

	var call string
	switch {
	case o.QML.Singleton:
		call = fmt.Sprintf("qmlRegisterSingletonType<%s>(uri, major, minor, %q, [](QQmlEngine*, QJSEngine*) -> QObject* { return new %s(); });",
			n.qualified, o.QMLName(), n.qualified)
	case o.QML.Uncreatable:
		call = fmt.Sprintf("qmlRegisterUncreatableType<%s>(uri, major, minor, %q, QString());",
			n.qualified, o.QMLName())
	default:
		call = fmt.Sprintf("qmlRegisterType<%s>(uri, major, minor, %q);", n.qualified, o.QMLName())
	}

	signature := registerName(o) + "(char const* uri, int major, int minor)"
	b.Functions = append(b.Functions, Fragment{
		Header: "void " + signature + ";",
		Source: definition("void", signature, Runtime+"::registerNumericAliases();", call),
	})
	return b
}
