package typesystem

// initPrelude registers the classes every program can refer to without
// declaring them, together with the subset of their members the compiler
// knows about.
func (r *Registry) initPrelude() {
	r.Object = NewClass("java.lang.Object", nil)
	r.register(r.Object)

	r.String = r.DefineClass("java.lang.String", r.Object)
	r.Pattern = r.DefineClass("java.util.regex.Pattern", r.Object)
	r.List = r.DefineClass("java.util.List", r.Object)
	r.List.Interface = true
	r.Throwable = r.DefineClass("java.lang.Throwable", r.Object)
	r.Exception = r.DefineClass("java.lang.Exception", r.Throwable)
	r.RuntimeException = r.DefineClass("java.lang.RuntimeException", r.Exception)
	math := r.DefineClass("java.lang.Math", r.Object)
	integer := r.DefineClass("java.lang.Integer", r.Object)
	system := r.DefineClass("java.lang.System", r.Object)

	obj := r.Object
	instance(obj, "toString", r.String)
	instance(obj, "hashCode", Int)
	instance(obj, "equals", Boolean, obj)

	str := r.String
	instance(str, "length", Int)
	instance(str, "charAt", Char, Int)
	instance(str, "substring", str, Int)
	instance(str, "substring", str, Int, Int)
	instance(str, "concat", str, str)
	instance(str, "indexOf", Int, str)
	instance(str, "toUpperCase", str)
	instance(str, "toLowerCase", str)
	instance(str, "trim", str)
	instance(str, "isEmpty", Boolean)
	static(str, "valueOf", str, obj)

	list := r.List
	instance(list, "size", Int)
	instance(list, "get", obj, Int)
	instance(list, "add", Boolean, obj)
	instance(list, "isEmpty", Boolean)

	instance(r.Pattern, "pattern", str)
	static(r.Pattern, "matches", Boolean, str, str)

	instance(r.Throwable, "getMessage", str)
	for _, c := range []*Class{r.Throwable, r.Exception, r.RuntimeException} {
		constructor(c)
		constructor(c, str)
	}

	static(math, "abs", Int, Int)
	static(math, "abs", Long, Long)
	static(math, "abs", Double, Double)
	static(math, "max", Int, Int, Int)
	static(math, "min", Int, Int, Int)
	static(math, "sqrt", Double, Double)
	static(integer, "parseInt", Int, str)
	static(integer, "toString", str, Int)
	static(system, "currentTimeMillis", Long)
	static(system, "exit", Void, Int)
}

func instance(c *Class, name string, ret Type, params ...Type) {
	c.AddMethod(&Method{Name: name, Return: ret, Params: params})
}

func static(c *Class, name string, ret Type, params ...Type) {
	c.AddMethod(&Method{Name: name, Return: ret, Params: params, Static: true})
}

func constructor(c *Class, params ...Type) {
	c.AddMethod(&Method{Name: ConstructorName, Return: c, Params: params, Constructor: true})
}
