package lang

import (
	"regexp"

	"github.com/mpeel/codeatlas/internal/model"
)

// Kinds specific to Flutter codebases. Classification follows the base class
// a widget or state holder extends.
const (
	KindStatelessWidget   model.Kind = "stateless_widget"
	KindStatefulWidget    model.Kind = "stateful_widget"
	KindWidgetState       model.Kind = "widget_state"
	KindInheritedWidget   model.Kind = "inherited_widget"
	KindInheritedModel    model.Kind = "inherited_model"
	KindInheritedNotifier model.Kind = "inherited_notifier"
	KindChangeNotifier    model.Kind = "change_notifier"
	KindValueNotifier     model.Kind = "value_notifier"
	KindCubit             model.Kind = "cubit"
	KindBloc              model.Kind = "bloc"
	KindNotifier          model.Kind = "notifier"
	KindStateNotifier     model.Kind = "state_notifier"
	KindCustomPainter     model.Kind = "custom_painter"
	KindCustomClipper     model.Kind = "custom_clipper"
	KindRoute             model.Kind = "route"
	KindRenderObject      model.Kind = "render_object"
)

func flutterClassRule(kind model.Kind, base string) Rule {
	return Rule{
		Kind:    kind,
		Pattern: regexp.MustCompile(`^` + dartMods + `class\s+(\w+)\s+extends\s+` + base),
	}
}

// The Flutter analyzer registers no extensions of its own: the project
// aggregator routes .dart files here when the pubspec declares a Flutter SDK
// dependency, and to the plain Dart analyzer otherwise.
func init() {
	kinds := []model.Kind{
		KindStatelessWidget, KindStatefulWidget, KindWidgetState,
		KindInheritedWidget, KindInheritedModel, KindInheritedNotifier,
		KindChangeNotifier, KindValueNotifier, KindCubit, KindBloc,
		KindNotifier, KindStateNotifier, KindCustomPainter, KindCustomClipper,
		KindRoute, KindRenderObject,
	}
	kinds = append(kinds, dartKinds()...)

	rules := append([]Rule{}, dartDirectiveRules...)
	rules = append(rules,
		Rule{Kind: KindExtensionType, Pattern: regexp.MustCompile(`^` + dartMods + `extension\s+type\s+(\w+)`)},
		// Widget base classes, checked before the generic class shapes.
		flutterClassRule(KindStatelessWidget, `StatelessWidget`),
		flutterClassRule(KindStatefulWidget, `StatefulWidget`),
		flutterClassRule(KindWidgetState, `State<\w+>`),
		flutterClassRule(KindInheritedWidget, `InheritedWidget`),
		flutterClassRule(KindInheritedModel, `InheritedModel`),
		flutterClassRule(KindInheritedNotifier, `InheritedNotifier`),
		// State management base classes.
		Rule{Kind: KindChangeNotifier, Pattern: regexp.MustCompile(`^` + dartMods + `class\s+(\w+)\s+(?:extends|with)\s+.*ChangeNotifier`)},
		flutterClassRule(KindValueNotifier, `ValueNotifier`),
		flutterClassRule(KindCubit, `Cubit<\w+>`),
		flutterClassRule(KindBloc, `Bloc<\w+,\s*\w+>`),
		flutterClassRule(KindNotifier, `(?:Async)?Notifier<\w+>`),
		flutterClassRule(KindStateNotifier, `StateNotifier<\w+>`),
		// Other framework base classes.
		flutterClassRule(KindCustomPainter, `CustomPainter`),
		flutterClassRule(KindCustomClipper, `CustomClipper`),
		flutterClassRule(KindRoute, `(?:Page)?Route(?:Builder)?`),
		flutterClassRule(KindRenderObject, `(?:Render\w+|SingleChildRenderObjectWidget|MultiChildRenderObjectWidget)`),
		Rule{Kind: KindAbstractClass, Pattern: regexp.MustCompile(`^abstract\s+` + dartMods + `class\s+(\w+)`)},
		Rule{Kind: model.KindClass, Pattern: regexp.MustCompile(`^` + dartMods + `class\s+(\w+)`)},
	)
	rules = append(rules, dartMemberRules...)

	register(&Analyzer{
		Name:    "flutter",
		Syntax:  dartSyntax,
		Kinds:   kinds,
		Imports: dartImports,
		Rules:   rules,
	})
}
